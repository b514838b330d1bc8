package asyncfn

import (
	"context"
	"runtime"

	"github.com/on-the-ground/dyn_fn_go/storage"
)

// Pending is the handle to an in-flight erased computation. It borrows the
// computation's storage slot for as long as the computation has not
// completed; on completion or on abandonment the slot is released exactly
// once.
//
// A Pending is not goroutine-safe: polls must be sequential, matching
// cooperative-suspension semantics. Hand the handle over whole or not at
// all.
type Pending[R any] struct {
	slot     storage.MutSlot
	tab      *futureTable[R]
	done     bool
	released bool

	// cleanup destroys state the computation consumed at invocation time,
	// such as a single-shot callable. It shares the slot's exactly-once
	// release discipline.
	cleanup func()
}

// newPending places the computation in a slot built by the maker and pairs
// it with the table for the computation's concrete type.
func newPending[R any](fut Future[R], in storage.Maker) *Pending[R] {
	tab := futureTableFor[R](fut)
	return &Pending[R]{
		slot: in(fut, tab.release.Layout()),
		tab:  tab,
	}
}

// Poll drives the computation one step. When it first reports completion
// the storage is released; polling a completed or discarded handle panics.
func (p *Pending[R]) Poll(ctx context.Context) (R, bool) {
	if p.released {
		panic("asyncfn: poll of released computation")
	}
	v, done := p.tab.poll(p.slot.Get(), ctx)
	if done {
		p.done = true
		p.release()
	}
	return v, done
}

// Await drives the computation to completion, returning ctx.Err() if the
// context is done first. The deferred guard releases the storage on every
// exit path: normal completion, cancellation, and panic unwinding alike.
func (p *Pending[R]) Await(ctx context.Context) (R, error) {
	if p.released {
		panic("asyncfn: await of released computation")
	}
	defer p.release()
	for {
		select {
		case <-ctx.Done():
			var zero R
			return zero, ctx.Err()
		default:
		}
		if v, done := p.tab.poll(p.slot.Get(), ctx); done {
			p.done = true
			return v, nil
		}
		// Yield between polls: a computation that suspends without blocking
		// must not monopolize the thread.
		runtime.Gosched()
	}
}

// Discard abandons the computation without driving it further. The storage
// is still released exactly once; discarding twice is a no-op.
func (p *Pending[R]) Discard() {
	p.release()
}

// Done reports whether the computation has completed.
func (p *Pending[R]) Done() bool { return p.done }

func (p *Pending[R]) release() {
	if !p.released {
		p.released = true
		p.slot.Release(p.tab.release)
		if p.cleanup != nil {
			p.cleanup()
		}
	}
}
