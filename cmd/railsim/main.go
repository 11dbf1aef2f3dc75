// Command railsim runs a single track vibration simulation described by a
// YAML configuration file.
//
// The tool performs the following steps:
//   - Parses a YAML configuration file describing the rail, the support
//     layout, the grid parameters and the excitation.
//   - Assembles the track, the finite-difference discretization and the
//     absorbing boundaries, and factorizes the system matrix.
//   - Advances the Crank-Nicolson scheme over the full simulation time.
//   - Computes the frequency response (receptance/mobility) and, when
//     requested, the track decay rate.
//   - Writes the response CSV, an optional binary deflection dump and a
//     JSON run summary.
//
// Usage:
//
//	go run cmd/railsim/main.go -config path/to/config.yaml
//
// Or using the compiled binary:
//
//	./bin/railsim -config path/to/config.yaml
//
// Required flags:
//
//	-config string
//	 	Path to the YAML configuration file defining the simulation.
//
// For a complete example configuration file, see:
//
//	./configs/sample_config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/PlatypusBytes/GoRoll/internal/simulation"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration YAML file (required)")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("Error: You must provide a configuration file path using the -config flag")
	}

	// Interrupts cancel the run at step granularity.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := simulation.RunFile(ctx, *configPath)
	if err != nil {
		log.Fatalf("Error running simulation: %v", err)
	}

	fmt.Printf("Simulated %s track: %d nodes, %d time steps (dx=%.4f m)\n",
		out.Summary.TrackType, out.Summary.Nx, out.Summary.Nt, out.Summary.Dx)
	if out.Summary.PinnedPinnedFreq > 0 {
		fmt.Printf("Predicted pinned-pinned frequency: %.1f Hz\n", out.Summary.PinnedPinnedFreq)
	}
	if out.Summary.SleeperPassing > 0 {
		fmt.Printf("Predicted sleeper-passing frequency: %.1f Hz\n", out.Summary.SleeperPassing)
	}
	for _, w := range out.Summary.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	fmt.Println("Results written successfully")
}
