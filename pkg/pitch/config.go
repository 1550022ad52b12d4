package pitch

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Config.Validate and Track when the caller's
// parameters cannot be satisfied. They are typed so shells can decide
// whether to warn-and-clamp or abort, per the error-handling design: min/max
// violations abort, strength/dt violations are shell-level warn-and-clamp
// decisions made before the core ever sees them.
var (
	ErrSampleRate = errors.New("pitch: sample rate must be positive")
	ErrMinPitch   = errors.New("pitch: min pitch must be >= 1 Hz")
	ErrPitchRange = errors.New("pitch: max - min must be >= 1 Hz")
	ErrTimestep   = errors.New("pitch: timestep must be >= 0.001s")
)

// Config carries every tunable constant the planner needs. There is no
// global state in this package: DERBS, DLOG2P, POLYV, and the default
// strength threshold and timestep all live here instead of being baked into
// the algorithm.
type Config struct {
	// MinHz and MaxHz bound the candidate pitch grid.
	MinHz, MaxHz float64

	// StrengthThreshold gates the voiced/unvoiced decision; a frame whose
	// best candidate strength does not exceed this is reported unvoiced.
	StrengthThreshold float64

	// Dt is the output frame spacing in seconds.
	Dt float64

	// Derbs is the ERB-axis spacing, in ERB units, between fERBs samples.
	Derbs float64

	// Dlog2p is the candidate-grid spacing, in octaves (log2 Hz).
	Dlog2p float64

	// Polyv is the sub-bin search density, in octaves, used by the
	// quadratic pitch refinement.
	Polyv float64
}

// DefaultConfig returns the reference constants: a 100-600Hz range, a 0.3
// strength threshold, a 1ms timestep, and the DERBS/DLOG2P/POLYV values the
// algorithm was tuned against.
func DefaultConfig() Config {
	return Config{
		MinHz:             100,
		MaxHz:             600,
		StrengthThreshold: 0.3,
		Dt:                0.001,
		Derbs:             0.1,
		Dlog2p:            1.0 / 96,
		Polyv:             1.0 / 768,
	}
}

// Validate checks the core's hard constraints given a sample rate. MaxHz is
// clamped to the Nyquist frequency in place (a correctness decision, not an
// error) rather than rejected; every other violation returns a sentinel
// error wrapped with the offending value.
func (c *Config) Validate(fs float64) error {
	if fs <= 0 {
		return fmt.Errorf("fs=%g: %w", fs, ErrSampleRate)
	}
	if c.MinHz < 1 {
		return fmt.Errorf("min=%g: %w", c.MinHz, ErrMinPitch)
	}
	if c.MaxHz-c.MinHz < 1 {
		return fmt.Errorf("min=%g max=%g: %w", c.MinHz, c.MaxHz, ErrPitchRange)
	}
	if c.Dt < 0.001 {
		return fmt.Errorf("dt=%g: %w", c.Dt, ErrTimestep)
	}
	if nyquist := fs / 2; c.MaxHz > nyquist {
		c.MaxHz = nyquist
	}
	return nil
}
