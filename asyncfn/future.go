package asyncfn

import (
	"context"
	"reflect"

	"github.com/on-the-ground/dyn_fn_go/internal/vtables"
	"github.com/on-the-ground/dyn_fn_go/shared/helper"
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// Future is a suspendable computation driven by repeated polling. Poll
// returns the result and true once the computation has completed; until
// then it returns false, suspending only where the computation itself
// suspends (typically blocking on a channel or the context).
//
// Polls of one future are sequential; the engine never polls concurrently
// and neither may an external driver.
type Future[R any] interface {
	Poll(ctx context.Context) (R, bool)
}

// FutureFunc adapts a polling function to the Future contract.
type FutureFunc[R any] func(context.Context) (R, bool)

func (f FutureFunc[R]) Poll(ctx context.Context) (R, bool) { return f(ctx) }

// Ready is the immediately complete future.
type Ready[R any] struct {
	val R
}

// NewReady wraps an already computed result.
func NewReady[R any](v R) *Ready[R] { return &Ready[R]{val: v} }

// Poll completes on the first call.
func (r *Ready[R]) Poll(_ context.Context) (R, bool) { return r.val, true }

// futureTable is the computation-specific dispatch table: a poll entry and a
// release descriptor, built once per concrete future type.
type futureTable[R any] struct {
	poll    func(fut any, ctx context.Context) (R, bool)
	release *storage.ReleaseTable
}

// futureTableFor memoizes the table for the dynamic type of fut. The poll
// entry reinterprets the slot's erased value as the stored future; the
// release descriptor is what makes abandonment run the computation's
// Dispose hook exactly once.
func futureTableFor[R any](fut Future[R]) *futureTable[R] {
	key := vtables.KeyOf[R](reflect.TypeOf(fut), vtables.ConvFuture)
	tab, ok := helper.GetTypedValueOf2[*futureTable[R]](func() (any, bool) {
		return vtables.LoadOrBuild(key, func() any {
			return &futureTable[R]{
				poll: func(f any, ctx context.Context) (R, bool) {
					return f.(Future[R]).Poll(ctx)
				},
				release: storage.NewReleaseTableOf(fut),
			}
		}), true
	})
	if !ok {
		panic("asyncfn: future table registered with mismatched instantiation")
	}
	return tab
}
