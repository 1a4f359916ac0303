package audio

const (
	// Frequency of the generated tone in Hz.
	Frequency = 440

	// Gain applied to the unit-amplitude oscillator, about -14 dB of headroom.
	Gain = 0.2
)

// An Oscillator produces one sample per call.
type Oscillator interface {
	Next() float64
}

// Tone is a mono oscillator duplicated onto every output channel.
type Tone struct {
	Osc  Oscillator
	Gain float64
}

// NewTone returns the fixed 440 Hz tone.  The oscillator's step is set when
// Init delivers the stream's sample rate.
func NewTone(driftFree bool) *Tone {
	var osc Oscillator = NewSineOsc(Frequency, 0)
	if driftFree {
		osc = NewIndexedSineOsc(Frequency, 0)
	}
	return &Tone{Osc: osc, Gain: Gain}
}

// Process fills out with one frame per index of out[0].  It runs on the
// backend's real-time thread: no allocation, no locking, no I/O.
func (t *Tone) Process(out [][]float32) {
	if len(out) == 0 {
		return
	}
	for i := range out[0] {
		x := float32(t.Gain * t.Osc.Next())
		for _, ch := range out {
			ch[i] = x
		}
	}
}
