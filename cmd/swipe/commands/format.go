package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/primeharmonic/swipe/pkg/cli"
	"github.com/primeharmonic/swipe/pkg/pitch"
)

// melScale converts a frequency in Hz to the Mel scale: mel(hz) =
// 1127.01048*ln(1 + hz/700). Mel display is a CLI-only convenience;
// pkg/pitch always operates and reports in Hz.
func melScale(hz float64) float64 {
	return 1127.01048 * math.Log(1+hz/700)
}

// outputOptions controls how writeFrames renders a pitch track.
type outputOptions struct {
	mel          bool
	skipUnvoiced bool
	json         bool
	pretty       bool
}

// pitchLine is the --json line shape: {time, hz, voiced}.
type pitchLine struct {
	Time   float64 `json:"time"`
	Hz     float64 `json:"hz"`
	Voiced bool    `json:"voiced"`
}

func displayHz(hz float64, mel bool) float64 {
	if mel {
		return melScale(hz)
	}
	return hz
}

// writeFrames renders frames to w per opts. The default format is two
// whitespace-separated columns, time at 7 decimals and pitch at 4, with
// "NaN" for unvoiced frames when they aren't skipped.
func writeFrames(w io.Writer, frames []pitch.Frame, opts outputOptions) error {
	switch {
	case opts.json:
		return writeFramesJSON(w, frames, opts)
	case opts.pretty:
		return writeFramesPretty(w, frames, opts)
	default:
		return writeFramesColumns(w, frames, opts)
	}
}

func writeFramesColumns(w io.Writer, frames []pitch.Frame, opts outputOptions) error {
	for _, f := range frames {
		if !f.Voiced && opts.skipUnvoiced {
			continue
		}
		if f.Voiced {
			if _, err := fmt.Fprintf(w, "%.7f %.4f\n", f.TimeSec, displayHz(f.Hz, opts.mel)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%.7f NaN\n", f.TimeSec); err != nil {
			return err
		}
	}
	return nil
}

func writeFramesJSON(w io.Writer, frames []pitch.Frame, opts outputOptions) error {
	enc := json.NewEncoder(w)
	for _, f := range frames {
		if !f.Voiced && opts.skipUnvoiced {
			continue
		}
		line := pitchLine{Time: f.TimeSec, Voiced: f.Voiced}
		if f.Voiced {
			line.Hz = displayHz(f.Hz, opts.mel)
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

func writeFramesPretty(w io.Writer, frames []pitch.Frame, opts outputOptions) error {
	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		if !f.Voiced && opts.skipUnvoiced {
			continue
		}
		hz, voiced := 0.0, f.Voiced
		if voiced {
			hz = displayHz(f.Hz, opts.mel)
		}
		rows = append(rows, cli.FormatPitchRow(f.TimeSec, hz, voiced))
	}
	_, err := fmt.Fprint(w, cli.PrettyTable([]string{"time", "pitch"}, rows, cli.DefaultPrettyTheme))
	return err
}
