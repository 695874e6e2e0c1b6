package syncer

import (
	"context"
	"sync"
)

// Pending is the outcome of work started with Dispatch. Callers may wait on
// it or drop it.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending { return &Pending{done: make(chan struct{})} }

// Done is closed once the work has finished.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the work finishes or ctx is done. Giving up on the wait
// does not stop the work.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pending) finish(err error) {
	p.err = err
	close(p.done)
}

// dispatcher tracks background work so that shutdown can wait for it.
type dispatcher struct {
	wg sync.WaitGroup
}

func (d *dispatcher) dispatch(ctx context.Context, fn func(context.Context) error) *Pending {
	p := newPending()
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		p.finish(fn(ctx))
	}()
	return p
}

func (d *dispatcher) wait() { d.wg.Wait() }
