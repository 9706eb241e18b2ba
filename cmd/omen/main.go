// Package main provides the omen CLI, a tool for inspecting the built-in
// entity registry and exporting catalog snapshots.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
