package audio

import (
	"math"
	"testing"
)

func newTestTone(freq, rate float64) *Tone {
	return &Tone{Osc: NewSineOsc(freq, rate), Gain: Gain}
}

func stereo(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func TestTone_Process(t *testing.T) {
	tone := newTestTone(1, 4)
	out := stereo(8)
	tone.Process(out)
	want := []float64{0, Gain, 0, -Gain, 0, Gain, 0, -Gain}
	for i, w := range want {
		if math.Abs(float64(out[0][i])-w) > 1e-6 {
			t.Errorf("left[%d] = %v, want %v", i, out[0][i], w)
		}
		if out[0][i] != out[1][i] {
			t.Errorf("frame %d: left %v != right %v", i, out[0][i], out[1][i])
		}
	}
}

func TestTone_gain(t *testing.T) {
	tone := newTestTone(Frequency, 44100)
	out := stereo(512)
	// float32(0.2) rounds up to 0.20000000298, so full-scale samples land on
	// the float32 form of the gain.
	limit := float64(float32(Gain))
	for n := 0; n < 200; n++ {
		tone.Process(out)
		for _, ch := range out {
			for i, x := range ch {
				if math.Abs(float64(x)) > limit {
					t.Fatalf("buffer %d frame %d = %v exceeds gain", n, i, x)
				}
			}
		}
	}
}

func TestTone_continuousAcrossBuffers(t *testing.T) {
	// Odd buffer sizes must give the same stream as one long buffer.
	whole := stereo(1000)
	newTestTone(Frequency, 48000).Process(whole)

	tone := newTestTone(Frequency, 48000)
	var got []float32
	for _, n := range []int{1, 63, 256, 100, 500, 80} {
		out := stereo(n)
		tone.Process(out)
		got = append(got, out[0]...)
	}
	for i := range got {
		if got[i] != whole[0][i] {
			t.Fatalf("frame %d = %v, want %v", i, got[i], whole[0][i])
		}
	}
}

func TestTone_noChannels(t *testing.T) {
	tone := newTestTone(Frequency, 48000)
	tone.Process(nil)
	if p := tone.Osc.(*SineOsc).Phase(); p != 0 {
		t.Errorf("phase advanced to %v without output", p)
	}
}

func TestTone_Process_noAlloc(t *testing.T) {
	for name, tone := range map[string]*Tone{
		"accumulated": NewTone(false),
		"indexed":     NewTone(true),
	} {
		Init(tone, Params{SampleRate: 48000})
		out := stereo(256)
		if n := testing.AllocsPerRun(100, func() { tone.Process(out) }); n != 0 {
			t.Errorf("%s: %v allocations per callback", name, n)
		}
	}
}

func TestNewTone(t *testing.T) {
	for driftFree, want := range map[bool]string{false: "*audio.SineOsc", true: "*audio.IndexedSineOsc"} {
		tone := NewTone(driftFree)
		if tone.Gain != Gain {
			t.Errorf("gain = %v, want %v", tone.Gain, Gain)
		}
		var got string
		switch osc := tone.Osc.(type) {
		case *SineOsc:
			got = "*audio.SineOsc"
			if osc.Freq() != Frequency {
				t.Errorf("freq = %v", osc.Freq())
			}
		case *IndexedSineOsc:
			got = "*audio.IndexedSineOsc"
			if osc.Freq() != Frequency {
				t.Errorf("freq = %v", osc.Freq())
			}
		}
		if got != want {
			t.Errorf("NewTone(%v) oscillator = %s, want %s", driftFree, got, want)
		}
	}
}

func BenchmarkTone_Process(b *testing.B) {
	tone := newTestTone(Frequency, 48000)
	out := stereo(256)
	for i := 0; i < b.N; i++ {
		tone.Process(out)
	}
}
