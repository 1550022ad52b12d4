// Package pitch implements SWIPE', a sawtooth-waveform-inspired pitch
// estimator, restricted to prime-numbered harmonics.
//
// The pipeline has four stages; the loudness and strength stages run once
// per analysis window:
//
//	Parameter Planner  -> window sizes, candidate pitch grid, ERB axis, primes
//	Loudness Stage     -> per-window STFT magnitude interpolated onto the ERB axis
//	Strength Stage     -> prime-harmonic cosine kernel correlated against loudness
//	Pitch Extractor    -> argmax over candidates, quadratic sub-bin refinement
//
// Track wires the four stages together and accepts raw PCM samples, so
// callers never touch the intermediate matrices directly.
package pitch
