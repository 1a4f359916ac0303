package audio

import "math"

// Meter accumulates the peak and RMS amplitude of everything passed to Add.
type Meter struct {
	peak  float64
	sumSq float64
	n     int
}

func (m *Meter) Add(x []float32) {
	for _, x := range x {
		x := float64(x)
		if a := math.Abs(x); a > m.peak {
			m.peak = a
		}
		m.sumSq += x * x
	}
	m.n += len(x)
}

func (m *Meter) Peak() float64 { return m.peak }

func (m *Meter) RMS() float64 {
	if m.n == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.n))
}

// Count is the number of samples measured.
func (m *Meter) Count() int { return m.n }

func (m *Meter) Reset() { *m = Meter{} }
