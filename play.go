package audio

import (
	"context"
	"errors"
)

// Play streams t through d until ctx is done.  The tone is initialized with
// the parameters the device negotiated; started, if not nil, is called with
// them once the stream runs.
func Play(ctx context.Context, d Device, t *Tone, started func(Params)) error {
	p, err := d.Open(t.Process)
	if err != nil {
		return errors.Join(err, d.Close())
	}
	Init(t, p)
	if err := d.Start(); err != nil {
		return errors.Join(err, d.Close())
	}
	if started != nil {
		started(p)
	}
	<-ctx.Done()
	return d.Close()
}
