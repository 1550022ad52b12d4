package pitch

import "math"

// Frame is one output pitch estimate: a time offset from the signal start,
// an estimated fundamental frequency, and whether the frame cleared the
// strength threshold. Hz is 0 and meaningless when Voiced is false —
// callers must check Voiced, not Hz, to test for "undefined".
type Frame struct {
	TimeSec float64
	Hz      float64
	Voiced  bool
}

// extract runs the pitch extractor over the accumulated strength matrix
// S (candidates x output frames), producing one Frame per column.
func extract(S *matrix, plan *Plan, outputFrames int) []Frame {
	frames := make([]Frame, outputFrames)
	k := len(plan.Pc)

	for j := 0; j < outputFrames; j++ {
		frames[j].TimeSec = float64(j) * plan.cfg.Dt

		best := math.Inf(-1)
		bestI := 0
		for i := 0; i < k; i++ {
			v := S.at(i, j)
			if v > best {
				best = v
				bestI = i
			}
		}

		if best <= plan.cfg.StrengthThreshold {
			continue // Voiced stays false, Hz stays 0
		}

		frames[j].Voiced = true

		if bestI == 0 || bestI == k-1 {
			frames[j].Hz = plan.Pc[bestI]
			continue
		}

		frames[j].Hz = refine(S, plan, bestI, j)
	}

	return frames
}

// refine performs the log-frequency quadratic sub-bin refinement around
// the argmax candidate bestI at output frame j: fit a quadratic through
// the three neighboring strengths in normalized log-frequency, evaluate
// it on a dense sub-bin grid, and report the grid point that maximizes it.
func refine(S *matrix, plan *Plan, bestI, j int) float64 {
	pc := plan.Pc
	tc2 := 1 / pc[bestI]

	var ntc, y [3]float64
	for m := 0; m < 3; m++ {
		idx := bestI + m - 1
		ntc[m] = ((1/pc[idx])/tc2 - 1) * 2 * math.Pi
		y[m] = S.at(idx, j)
	}
	fit := fitQuad3(ntc, y)

	log2Lo := math.Log2(pc[bestI-1])
	log2Hi := math.Log2(pc[bestI+1])
	search := int(math.Round((log2Hi-log2Lo)/plan.cfg.Polyv + 1))
	if search < 1 {
		search = 1
	}

	best := math.Inf(-1)
	bestS := 0
	for s := 0; s < search; s++ {
		logp := log2Lo + float64(s)*plan.cfg.Polyv
		xq := ((1/math.Pow(2, logp))/tc2 - 1) * 2 * math.Pi
		v := fit.eval(xq)
		if v > best {
			best = v
			bestS = s
		}
	}

	return math.Pow(2, log2Lo+float64(bestS)*plan.cfg.Polyv)
}
