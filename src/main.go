package main

import (
	"fmt"
	"os"
)

func main() {
	// Lambda runtimes set _HANDLER; everywhere else this is the CLI.
	if handler := os.Getenv("_HANDLER"); handler != "" {
		if err := startLambda(handler); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
