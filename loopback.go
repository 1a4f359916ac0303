package audio

import (
	"errors"
	"sync"
	"time"
)

// DefaultBufferSize is the Loopback buffer size when none is given.
const DefaultBufferSize = 512

// Loopback is a Device without a backend.  It calls the callback from its own
// goroutine, either as fast as possible or paced at the sample rate, and
// hands every filled buffer to Sink.
type Loopback struct {
	Frames   int  // stop after this many frames; 0 runs until Close
	Realtime bool // pace callbacks at the sample rate

	// Sink sees each buffer after the callback filled it.  It runs on the
	// loopback goroutine and must not retain out.
	Sink func(out [][]float32)

	sampleRate float64
	bufferSize int
	cb         Callback
	buf        [][]float32
	view       [][]float32
	started    bool
	closed     bool
	stop, done chan struct{}
	closeOnce  sync.Once
}

func NewLoopback(sampleRate float64, bufferSize int) *Loopback {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Loopback{
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Done is closed once the loopback goroutine has exited, or on Close if it
// never started.
func (d *Loopback) Done() <-chan struct{} { return d.done }

func (d *Loopback) Open(cb Callback) (Params, error) {
	if d.sampleRate <= 0 {
		return Params{}, &BackendError{Op: OpConnect, Backend: "loopback", Err: errors.New("sample rate must be positive")}
	}
	if cb == nil {
		return Params{}, &BackendError{Op: OpRegister, Backend: "loopback", Err: errors.New("nil callback")}
	}
	d.cb = cb
	d.buf = make([][]float32, ChannelCount)
	for i := range d.buf {
		d.buf[i] = make([]float32, d.bufferSize)
	}
	d.view = make([][]float32, ChannelCount)
	return Params{SampleRate: d.sampleRate, BufferSize: d.bufferSize}, nil
}

func (d *Loopback) Start() error {
	if d.cb == nil {
		return &BackendError{Op: OpActivate, Backend: "loopback", Err: errors.New("device not open")}
	}
	if d.closed {
		return &BackendError{Op: OpActivate, Backend: "loopback", Err: errors.New("device closed")}
	}
	if d.started {
		return &BackendError{Op: OpActivate, Backend: "loopback", Err: errors.New("already started")}
	}
	d.started = true
	go d.run()
	return nil
}

func (d *Loopback) run() {
	defer close(d.done)

	var tick <-chan time.Time
	if d.Realtime {
		period := time.Duration(float64(d.bufferSize) / d.sampleRate * float64(time.Second))
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	remaining := d.Frames
	for {
		select {
		case <-d.stop:
			return
		default:
		}
		if tick != nil {
			select {
			case <-d.stop:
				return
			case <-tick:
			}
		}

		n := d.bufferSize
		if d.Frames > 0 {
			if remaining == 0 {
				return
			}
			n = min(n, remaining)
			remaining -= n
		}
		for i := range d.view {
			d.view[i] = d.buf[i][:n]
		}
		d.cb(d.view)
		if d.Sink != nil {
			d.Sink(d.view)
		}
	}
}

func (d *Loopback) Close() error {
	d.closeOnce.Do(func() {
		d.closed = true
		close(d.stop)
		if !d.started {
			close(d.done)
		}
	})
	<-d.done
	return nil
}
