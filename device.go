// Package audio generates a fixed-frequency sine tone and streams it to an
// audio backend from the backend's real-time callback.
package audio

// ChannelCount is the number of output channels (left and right).
const ChannelCount = 2

// A Callback fills one buffer per channel.  All buffers have the same length.
type Callback func(out [][]float32)

// A Device is an audio backend that pulls samples through a Callback.
//
// Open connects to the backend and registers the output channels; the
// callback must not be invoked before Start.  Close stops the stream and
// releases the backend, and may be called after a failed Start.
type Device interface {
	Open(Callback) (Params, error)
	Start() error
	Close() error
}
