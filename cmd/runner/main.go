// Command runner processes multiple simulation configuration files in
// parallel with a configurable worker pool, e.g. for velocity sweeps.
//
// Usage:
//
//	go run cmd/runner/main.go -dir path/to/configs -workers 4
//
// Or using the compiled binary:
//
//	./bin/runner -dir path/to/configs -workers 4
//
// Flags:
//
//	-dir string
//	 	Required. Directory containing YAML configuration files.
//	-workers int
//	 	Optional. Number of parallel workers (default: number of logical CPUs).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/PlatypusBytes/GoRoll/internal/runner"
)

func main() {
	dir := flag.String("dir", "", "Directory containing YAML configuration files (required)")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of parallel workers")
	flag.Parse()

	if *dir == "" {
		log.Fatal("Error: You must provide a configuration directory using the -dir flag")
	}
	if *workers < 1 {
		log.Fatal("Error: -workers must be at least 1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runner.Run(ctx, *dir, *workers); err != nil {
		log.Fatalf("Error running batch: %v", err)
	}
}
