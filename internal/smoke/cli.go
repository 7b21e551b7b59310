package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Exercise Tracker Smoke Tool
===========================

Creates users, logs exercises for each of them concurrently and checks the
returned logs, counts and date filters against the submitted workload.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:3000")
  -users int
        Number of users to create (default 50)
  -exercises int
        Exercises logged per user (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write the workload, with assigned ids, to this JSON file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Smoke test a local instance
  go run ./cmd/smoke

  # Heavier run against another port
  go run ./cmd/smoke -users 500 -exercises 40 -workers 16 -url http://localhost:8080
`)
}
