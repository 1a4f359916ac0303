package audio

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// PeakFrequency returns the frequency of the strongest spectral component of
// x.  It transforms the largest power-of-two prefix of x under a Hann window
// and refines the peak bin by parabolic interpolation of its neighbours.
func PeakFrequency(x []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, errors.New("sample rate must be positive")
	}
	size := 1
	for size*2 <= len(x) {
		size *= 2
	}
	if size < 4 {
		return 0, errors.New("need at least 4 samples")
	}

	f, err := fft.New(size)
	if err != nil {
		return 0, err
	}
	buf := make([]complex128, size)
	for i := range buf {
		env := (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
		buf[i] = complex(x[i]*env, 0)
	}
	buf = f.Transform(buf)

	peak, peakMag := 0, 0.0
	for i := 1; i < size/2; i++ {
		if m := cmplx.Abs(buf[i]); m > peakMag {
			peak, peakMag = i, m
		}
	}
	if peakMag == 0 {
		return 0, nil
	}

	bin := float64(peak)
	if peak > 1 && peak < size/2-1 {
		a, b, c := cmplx.Abs(buf[peak-1]), peakMag, cmplx.Abs(buf[peak+1])
		if d := a - 2*b + c; d != 0 {
			bin += (a - c) / (2 * d)
		}
	}
	return bin * sampleRate / float64(size), nil
}

// BinWidth is the frequency resolution PeakFrequency works at for n samples.
func BinWidth(n int, sampleRate float64) float64 {
	size := 1
	for size*2 <= n {
		size *= 2
	}
	return sampleRate / float64(size)
}
