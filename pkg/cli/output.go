package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how Output renders a value.
type OutputFormat string

const (
	// FormatYAML renders as YAML, the default for terminal output.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON renders as indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatRaw writes strings and byte slices verbatim; anything else
	// falls back to YAML.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions configures Output's destination and rendering.
type OutputOptions struct {
	// Format selects the rendering; empty means YAML.
	Format OutputFormat

	// File is the destination path; empty means stdout.
	File string

	// Writer overrides File when non-nil.
	Writer io.Writer
}

// Output renders result to the configured destination. cmd/swipe uses it
// for `swipe config show`, which prints the persisted defaults.
func Output(result any, opts OutputOptions) error {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatRaw:
		switch v := result.(type) {
		case []byte:
			_, err := w.Write(v)
			return err
		case string:
			_, err := io.WriteString(w, v)
			return err
		default:
			data, err := yaml.Marshal(result)
			if err != nil {
				return fmt.Errorf("format output: %w", err)
			}
			_, err = w.Write(data)
			return err
		}
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}
