package pitch

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// hannWindow returns a Hann window of length n, h[j] = 0.5 - 0.5*cos(2*pi*j/n).
func hannWindow(n int) []float64 {
	h := make([]float64, n)
	for j := range h {
		h[j] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(j)/float64(n))
	}
	return h
}

// loudnessWindow computes the loudness matrix (frames x len(fERBs)) for one
// analysis window size w: a Hann-windowed, 50%-overlap STFT whose
// magnitude spectrum is cubic-spline interpolated onto the ERB axis,
// square-rooted, and L2-normalized row by row.
func loudnessWindow(signal []float64, fs float64, w int, fERBs []float64) *matrix {
	n := len(signal)
	w2 := w / 2
	hann := hannWindow(w)

	freq := make([]float64, w2)
	for j := range freq {
		freq[j] = float64(j) * fs / float64(w)
	}

	nFrames := (n+w2-1)/w2 + 1
	l := newMatrix(nFrames, len(fERBs))

	fft := fourier.NewFFT(w)
	frameBuf := make([]float64, w)
	mag := make([]float64, w2)

	for i := 0; i < nFrames; i++ {
		start := i*w2 - w2

		for j := 0; j < w; j++ {
			srcIdx := start + j
			if srcIdx < 0 || srcIdx >= n {
				frameBuf[j] = 0
			} else {
				frameBuf[j] = signal[srcIdx] * hann[j]
			}
		}

		coeffs := fft.Coefficients(nil, frameBuf)
		silent := true
		for j := 0; j < w2; j++ {
			mag[j] = math.Hypot(real(coeffs[j]), imag(coeffs[j]))
			if mag[j] != 0 {
				silent = false
			}
		}
		// A zero-energy frame keeps its all-zero row: the clamped-slope
		// spline would otherwise turn a flat zero spectrum into nonzero
		// loudness.
		if silent {
			continue
		}

		row := l.row(i)
		y2 := spline2(freq, mag)
		klo := 0
		for k, fe := range fERBs {
			if k == 0 {
				klo = bisect(freq, fe)
			} else {
				klo = bisectFrom(freq, fe, klo)
			}
			v, ok := splineEval(freq, mag, y2, fe, klo)
			if !ok || math.IsNaN(v) || v < 0 {
				v = 0
			}
			row[k] = math.Sqrt(v)
		}

		norm := floats.Norm(row, 2)
		if norm != 0 {
			floats.Scale(1/norm, row)
		}
	}

	return l
}
