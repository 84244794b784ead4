package tracker

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrShortSeries = errors.New("tracker: need at least 4 evenly spaced samples")

// PowerSpectrum returns the magnitude of the one-sided discrete Fourier
// transform of data after removing its mean. Element k corresponds to the
// frequency k / (len(data) * dt).
func PowerSpectrum(data []float64) []float64 {
	centred := make([]float64, len(data))
	copy(centred, data)
	floats.AddConst(-stat.Mean(data, nil), centred)

	coeffs := fourier.NewFFT(len(centred)).Coefficients(nil, centred)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the frequency in cycles per unit time of the
// strongest oscillation in data sampled every dt.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if len(data) < 4 || dt <= 0 {
		return 0, ErrShortSeries
	}
	ps := PowerSpectrum(data)
	k := floats.MaxIdx(ps[1:]) + 1
	return float64(k) / (float64(len(data)) * dt), nil
}

// Frequency returns the dominant oscillation frequency of velocity
// component c (0, 1 or 2) of particle i. Samples must be evenly spaced,
// which holds for fixed-step runs.
func (r *Result) Frequency(i, c int) (float64, error) {
	if len(r.Times) < 4 {
		return 0, ErrShortSeries
	}
	data := make([]float64, len(r.States))
	for k := range r.States {
		v := r.Velocity(k, i)
		data[k] = [3]float64{v.X, v.Y, v.Z}[c]
	}
	return DominantFrequency(data, r.Times[1]-r.Times[0])
}
