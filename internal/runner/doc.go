// Runner is a package for executing track vibration simulations in
// parallel across multiple YAML configuration files, e.g. velocity sweeps
// of a moving load. Each worker runs a full simulation in-process and owns
// its discretization, solver and buffers, so runs share no mutable state
// and stay deterministic.
//
// The tool performs the following:
//   - Walks a directory recursively to discover all `.yaml` configuration files.
//   - Spawns a configurable number of worker goroutines.
//   - Each worker executes the simulation described by a given YAML file.
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
//
// Notes:
//   - Files must have the `.yaml` extension and be properly formatted.
//   - A failing configuration is logged and does not stop the batch.
package runner
