// Command swipe estimates fundamental-frequency pitch tracks from WAV
// audio using the SWIPE' (prime-harmonics) algorithm implemented in
// pkg/pitch.
//
// Usage:
//
//	swipe [flags]
//
// See `swipe --help` for the full flag reference.
package main

import (
	"fmt"
	"os"

	"github.com/primeharmonic/swipe/cmd/swipe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
