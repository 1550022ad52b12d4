package pitch

// Track runs the full SWIPE' pipeline over a mono signal at sample rate
// fs, using cfg for the pitch range, strength threshold, timestep, and
// algorithm constants. It returns one Frame per output timestep.
//
// The core is single-threaded and synchronous: each window's
// loudness matrix is built, consumed by accumulateWindow, and discarded
// before the next window size is processed, so peak memory never holds
// more than one loudness matrix plus the global strength matrix.
func Track(signal []float64, fs float64, cfg Config) ([]Frame, error) {
	plan, err := NewPlan(fs, cfg)
	if err != nil {
		return nil, err
	}
	return TrackWithPlan(signal, fs, plan), nil
}

// TrackWithPlan runs the pipeline using a precomputed Plan, letting
// callers amortize planner cost (the sieve and ERB axis construction)
// across many signals that share the same (fs, min, max, dt) — see
// pkg/pitch/cache.
func TrackWithPlan(signal []float64, fs float64, plan *Plan) []Frame {
	outputFrames := plan.OutputFrames(len(signal))
	S := newMatrix(len(plan.Pc), outputFrames)

	for n := range plan.Ws {
		accumulateWindow(S, plan, n, signal, fs, outputFrames)
	}

	return extract(S, plan, outputFrames)
}
