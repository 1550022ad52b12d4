package pitch

import "sync"

// TrackConcurrent is the opt-in parallel-across-windows variant of
// Track: per-window strength contributions commute under
// addition into the global strength matrix, so each window size can be
// processed in its own goroutine against a private strength buffer, with
// the buffers summed once every goroutine finishes. It is not the
// default — Track stays single-threaded and synchronous — since no
// testable property in this package requires the speedup, and the extra
// per-window allocation raises peak memory versus the sequential path.
func TrackConcurrent(signal []float64, fs float64, cfg Config) ([]Frame, error) {
	plan, err := NewPlan(fs, cfg)
	if err != nil {
		return nil, err
	}

	outputFrames := plan.OutputFrames(len(signal))
	k := len(plan.Pc)

	partials := make([]*matrix, len(plan.Ws))
	var wg sync.WaitGroup
	for n := range plan.Ws {
		partials[n] = newMatrix(k, outputFrames)
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			accumulateWindow(partials[n], plan, n, signal, fs, outputFrames)
		}(n)
	}
	wg.Wait()

	S := newMatrix(k, outputFrames)
	for _, p := range partials {
		for i, v := range p.data {
			S.data[i] += v
		}
	}

	return extract(S, plan, outputFrames), nil
}
