package audio

import "math"

const twoPi = 2 * math.Pi

// SineOsc is a phase-accumulating sine oscillator with a fixed frequency.
// The phase stays in [0, 2π) as long as the step is smaller than 2π, i.e. the
// frequency is below the sample rate.  Keeping freq below Nyquist is up to the
// caller.
type SineOsc struct {
	freq  float64
	phase float64
	step  float64
}

// NewSineOsc returns an oscillator at freq Hz.  If sampleRate is 0 the step is
// left at 0 until InitAudio supplies the backend's rate.
func NewSineOsc(freq, sampleRate float64) *SineOsc {
	o := &SineOsc{freq: freq}
	if sampleRate > 0 {
		o.step = twoPi * freq / sampleRate
	}
	return o
}

func (o *SineOsc) InitAudio(p Params) {
	o.step = twoPi * o.freq / p.SampleRate
}

func (o *SineOsc) Freq() float64  { return o.freq }
func (o *SineOsc) Step() float64  { return o.step }
func (o *SineOsc) Phase() float64 { return o.phase }

func (o *SineOsc) Next() float64 {
	x := math.Sin(o.phase)
	o.phase += o.step
	if o.phase >= twoPi {
		o.phase -= twoPi
		if o.phase >= twoPi {
			o.phase = math.Mod(o.phase, twoPi)
		}
	}
	return x
}

// IndexedSineOsc derives the phase from a sample counter instead of
// accumulating it, so rounding error does not build up over long runs.
type IndexedSineOsc struct {
	freq float64
	step float64
	n    uint64
}

func NewIndexedSineOsc(freq, sampleRate float64) *IndexedSineOsc {
	o := &IndexedSineOsc{freq: freq}
	if sampleRate > 0 {
		o.step = twoPi * freq / sampleRate
	}
	return o
}

func (o *IndexedSineOsc) InitAudio(p Params) {
	o.step = twoPi * o.freq / p.SampleRate
	o.n = 0
}

func (o *IndexedSineOsc) Freq() float64 { return o.freq }
func (o *IndexedSineOsc) Step() float64 { return o.step }

// Phase is the angle the next call to Next will use.
func (o *IndexedSineOsc) Phase() float64 {
	return math.Mod(float64(o.n)*o.step, twoPi)
}

func (o *IndexedSineOsc) Next() float64 {
	x := math.Sin(o.Phase())
	o.n++
	return x
}
