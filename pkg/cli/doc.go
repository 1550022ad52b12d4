// Package cli provides common CLI utilities shared by command-line tools in
// this module.
//
// This package includes:
//   - Per-app directory layout (~/.config/<app>/...)
//   - Output formatting (JSON, YAML, raw)
//   - A lipgloss-styled terminal table renderer (PrettyTable)
//
// Example usage:
//
//	paths, err := cli.NewPaths("swipe")
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
