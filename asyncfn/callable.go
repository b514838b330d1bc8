package asyncfn

import "context"

// AsyncCallable is the by-reference asynchronous calling convention:
// invocation reads the captured state and produces a suspendable
// computation.
type AsyncCallable[A, R any] interface {
	CallAsync(arg A) Future[R]
}

// MutAsyncCallable is the by-exclusive-reference asynchronous convention.
// The produced computation may borrow the captured state, so the caller
// must not invoke again until the previous computation completed or was
// discarded.
type MutAsyncCallable[A, R any] interface {
	CallAsyncMut(arg A) Future[R]
}

// OnceAsyncCallable is the single-shot asynchronous convention: the one
// permitted invocation consumes the captured state into the computation.
type OnceAsyncCallable[A, R any] interface {
	CallAsyncOnce(arg A) Future[R]
}

// AsyncFunc adapts a plain function to the by-reference async convention.
type AsyncFunc[A, R any] func(A) Future[R]

func (f AsyncFunc[A, R]) CallAsync(arg A) Future[R] { return f(arg) }

// MutAsyncFunc adapts a plain function to the by-exclusive-reference async
// convention.
type MutAsyncFunc[A, R any] func(A) Future[R]

func (f MutAsyncFunc[A, R]) CallAsyncMut(arg A) Future[R] { return f(arg) }

// OnceAsyncFunc adapts a plain function to the single-shot async
// convention.
type OnceAsyncFunc[A, R any] func(A) Future[R]

func (f OnceAsyncFunc[A, R]) CallAsyncOnce(arg A) Future[R] { return f(arg) }

// Go adapts a result-producing function into a future that runs it on its
// own goroutine, started lazily at the first poll. Subsequent polls block
// on the result channel or the context, whichever is done first; a context
// hit reports the zero value without completing, so the driver may poll
// again or abandon the handle.
func Go[R any](fn func(context.Context) R) Future[R] {
	var resCh chan R
	return FutureFunc[R](func(ctx context.Context) (R, bool) {
		if resCh == nil {
			resCh = make(chan R, 1)
			go func() { resCh <- fn(ctx) }()
		}
		select {
		case v := <-resCh:
			return v, true
		case <-ctx.Done():
			var zero R
			return zero, false
		}
	})
}
