package pitch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// kernel builds the prime-harmonic cosine template for one pitch
// candidate at pcHz, over the ERB axis fERBs, using harmonics 1..cutoff
// that are flagged prime (or the forced fundamental slot) in primes.
//
// The "valley" branch accumulates across primes while the "peak" branch
// overwrites: if two primes' valley bands overlap at the same bin, their
// contributions stack. Changing that would silently alter which pitch
// wins the argmax in the extractor, so it stays.
func kernel(fERBs []float64, pcHz float64, primes []bool, cutoff int) []float64 {
	k := make([]float64, len(fERBs))
	for h := 1; h <= cutoff && h <= len(primes); h++ {
		if !primes[h-1] {
			continue
		}
		hf := float64(h)
		for i, fe := range fERBs {
			q := fe / pcHz
			diff := math.Abs(q - hf)
			switch {
			case diff < 0.25:
				k[i] = math.Cos(2 * math.Pi * q)
			case diff < 0.75:
				k[i] += 0.5 * math.Cos(2*math.Pi*q)
			}
		}
	}
	for i, fe := range fERBs {
		k[i] *= math.Sqrt(1 / fe)
	}
	var sumSq float64
	for _, v := range k {
		if v > 0 {
			sumSq += v * v
		}
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		floats.Scale(1/norm, k)
	}
	return k
}

// candidateWeight reports the triangular window-blending weight mu for
// candidate distance dVal under window n of wsCount, and whether this
// window contributes to that candidate at all. Interior weights form a
// partition of unity across adjacent windows.
//
// Window 0 is flat at weight 1 for d < 1 rather than following the plain
// triangle down to zero, since there is no window further left to hand
// off to. The last window mirrors this on its right side: flat at 1 past
// its peak rather than tapering toward a nonexistent next window. A
// single-window plan (the degenerate case where min and max pitch share
// an octave bin) owns every candidate at weight 1.
func candidateWeight(n, wsCount int, dVal, dMax float64) (mu float64, ok bool) {
	peak := float64(n + 1)
	switch {
	case wsCount == 1:
		if dVal < 0 || dVal > dMax {
			return 0, false
		}
		return 1, true
	case n == 0:
		if dVal < 0 || dVal >= 2 {
			return 0, false
		}
		if dVal < 1 {
			return 1, true
		}
		return 1 - math.Abs(dVal-peak), true
	case n == wsCount-1:
		if dVal < float64(n) || dVal > dMax {
			return 0, false
		}
		if dVal > peak {
			return 1, true
		}
		return 1 - math.Abs(dVal-peak), true
	default:
		if dVal < float64(n) || dVal >= float64(n)+2 {
			return 0, false
		}
		return 1 - math.Abs(dVal-peak), true
	}
}

// accumulateWindow computes one window's strength contribution and adds
// it into the global strength matrix S (candidates x output frames).
//
// Per candidate covered by this window, the per-window strength Slocal is
// the kernel's inner product against every loudness frame; it is then
// linearly resampled from the loudness frame grid (hop W2/fs) onto the
// output frame grid (hop dt) and added into S with the window's
// triangular weight.
func accumulateWindow(S *matrix, plan *Plan, n int, signal []float64, fs float64, outputFrames int) {
	w := plan.Ws[n]
	w2 := w / 2
	l := loudnessWindow(signal, fs, w, plan.FERBs)
	tauStep := float64(w2) / fs
	dMax := plan.D[len(plan.D)-1]

	for i, pcHz := range plan.Pc {
		mu, ok := candidateWeight(n, len(plan.Ws), plan.D[i], dMax)
		if !ok || mu <= 0 {
			continue
		}
		cutoff := plan.harmonicCutoff(pcHz)
		if cutoff < 1 {
			continue
		}
		ker := kernel(plan.FERBs, pcHz, plan.Primes, cutoff)

		sloc := make([]float64, l.rows)
		for f := 0; f < l.rows; f++ {
			sloc[f] = floats.Dot(ker, l.row(f))
		}

		resampleAdd(S.row(i), sloc, tauStep, plan.cfg.Dt, mu)
	}
}

// resampleAdd adds mu-weighted values of sloc, linearly resampled from
// its tauStep-second grid onto row's dt-second grid. For each output
// time, k advances to the first loudness frame strictly past it, so the
// value interpolates backward between frames k-1 and k; at an output
// time beyond the last loudness frame the last pair extrapolates.
func resampleAdd(row, sloc []float64, tauStep, dt, mu float64) {
	if len(sloc) < 2 {
		return
	}
	k := 0
	for j := range row {
		tj := float64(j) * dt
		for k < len(sloc)-1 && float64(k)*tauStep <= tj {
			k++
		}
		tauK := float64(k) * tauStep
		row[j] += mu * (sloc[k] + (tj-tauK)*(sloc[k]-sloc[k-1])/tauStep)
	}
}
