package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrNoPeriod = errors.New("analysis: no dominant period")

// PowerSpectrum returns the magnitude of the first len(data)/2 frequency bins.
func PowerSpectrum(data []float64) []float64 {
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Period estimates the dominant period of samples taken every dt. The mean
// is removed and a Hann window applied before the transform; the peak bin
// is refined by parabolic interpolation.
func Period(samples []float64, dt float64) (float64, error) {
	n := len(samples)
	if n < 4 || !(dt > 0) {
		return 0, ErrNoPeriod
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
		windowed[i] = (v - mean) * w
	}

	ps := PowerSpectrum(windowed)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if !(ps[peak] > 0) || math.IsNaN(ps[peak]) {
		return 0, ErrNoPeriod
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return float64(n) * dt / bin, nil
}
