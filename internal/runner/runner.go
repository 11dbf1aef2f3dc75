package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PlatypusBytes/GoRoll/internal/simulation"
)

// Job represents a single YAML file to process.
type Job struct {
	path string
}

// worker processes jobs from the jobs channel concurrently.
func worker(ctx context.Context, id int, jobs <-chan Job, wg *sync.WaitGroup, processedCount *atomic.Int64) {
	defer wg.Done()

	for job := range jobs {
		if _, err := simulation.RunFile(ctx, job.path); err != nil {
			log.Printf("Worker %d: Failed on config %s: %v\n", id, job.path, err)
		}
		processedCount.Add(1)
	}
}

// reportProgress prints the current processing progress with a visual progress bar.
func reportProgress(processed *atomic.Int64, total int64, done <-chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count := processed.Load()
			percent := float64(count) / float64(total) * 100
			width := 50
			bar := strings.Repeat("=", int(float64(width)*float64(count)/float64(total)))
			padding := strings.Repeat(" ", width-len(bar))
			fmt.Printf("\r[%s%s] %.2f%% (%d/%d)", bar, padding, percent, count, total)
		case <-done:
			return
		}
	}
}

// Run sets up the runner for parallel processing of YAML configuration files.
func Run(ctx context.Context, configDir string, numWorkers int) error {

	// Create job channel
	jobs := make(chan Job, 100)

	var wg sync.WaitGroup
	var processedCount atomic.Int64

	// Start workers
	for i := range numWorkers {
		wg.Add(1)
		go worker(ctx, i, jobs, &wg, &processedCount)
	}

	// Collect YAML files
	yamlFiles := []string{}
	err := filepath.WalkDir(configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".yaml") {
			yamlFiles = append(yamlFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking through config directory: %v", err)
	}
	if len(yamlFiles) == 0 {
		return fmt.Errorf("no YAML configuration files found in directory: %s", configDir)
	}

	total := int64(len(yamlFiles))
	fmt.Printf("Found %d YAML files to process\n", total)

	// Start progress reporting goroutine
	done := make(chan struct{})
	go reportProgress(&processedCount, total, done)

	// Send jobs to workers
	for _, path := range yamlFiles {
		jobs <- Job{path: path}
	}
	close(jobs)

	wg.Wait()
	close(done)

	fmt.Printf("\nCompleted processing %d YAML files\n", processedCount.Load())
	return nil
}
