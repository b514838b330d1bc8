package asyncfn

import (
	"context"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/on-the-ground/dyn_fn_go/internal/vtables"
	"github.com/on-the-ground/dyn_fn_go/shared/helper"
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// asyncTable is the dispatch table of an erased async callable. The call
// entry produces the computation and places it in a slot built by the given
// maker; callSync is the synchronous bypass, nil for callables that can
// suspend.
type asyncTable[A, R any] struct {
	call     func(fn any, arg A, in storage.Maker) *Pending[R]
	callSync func(fn any, arg A) R
	release  *storage.ReleaseTable
}

func loadAsyncTable[A, R any](key vtables.Key, build func() any) *asyncTable[A, R] {
	tab, ok := helper.GetTypedValueOf2[*asyncTable[A, R]](func() (any, bool) {
		return vtables.LoadOrBuild(key, build), true
	})
	if !ok {
		panic("asyncfn: dispatch table registered with mismatched instantiation")
	}
	return tab
}

func asyncTableByRef[A, R any, F AsyncCallable[A, R]]() *asyncTable[A, R] {
	return loadAsyncTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvAsync),
		func() any {
			return &asyncTable[A, R]{
				call: func(fn any, arg A, in storage.Maker) *Pending[R] {
					return newPending[R](fn.(F).CallAsync(arg), in)
				},
				release: storage.NewReleaseTable[F](),
			}
		},
	)
}

func asyncTableByMutRef[A, R any, F MutAsyncCallable[A, R]]() *asyncTable[A, R] {
	return loadAsyncTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvAsyncMut),
		func() any {
			return &asyncTable[A, R]{
				call: func(fn any, arg A, in storage.Maker) *Pending[R] {
					return newPending[R](fn.(F).CallAsyncMut(arg), in)
				},
				release: storage.NewReleaseTable[F](),
			}
		},
	)
}

func asyncTableByOnce[A, R any, F OnceAsyncCallable[A, R]]() *asyncTable[A, R] {
	return loadAsyncTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvAsyncOnce),
		func() any {
			return &asyncTable[A, R]{
				call: func(fn any, arg A, in storage.Maker) *Pending[R] {
					return newPending[R](fn.(F).CallAsyncOnce(arg), in)
				},
				release: storage.NewReleaseTable[F](),
			}
		},
	)
}

// The from-sync builders wrap a synchronous callable. The produced
// computation completes on its first poll; callSync bypasses computation
// storage entirely.

func syncTableByRef[A, R any, F dynfn.Callable[A, R]]() *asyncTable[A, R] {
	return loadAsyncTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvAsyncSync),
		func() any {
			return &asyncTable[A, R]{
				call: func(fn any, arg A, in storage.Maker) *Pending[R] {
					f := fn.(F)
					return newPending[R](FutureFunc[R](func(context.Context) (R, bool) {
						return f.Call(arg), true
					}), in)
				},
				callSync: func(fn any, arg A) R { return fn.(F).Call(arg) },
				release:  storage.NewReleaseTable[F](),
			}
		},
	)
}

func syncTableByMutRef[A, R any, F dynfn.MutCallable[A, R]]() *asyncTable[A, R] {
	return loadAsyncTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvAsyncSyncMut),
		func() any {
			return &asyncTable[A, R]{
				call: func(fn any, arg A, in storage.Maker) *Pending[R] {
					f := fn.(F)
					return newPending[R](FutureFunc[R](func(context.Context) (R, bool) {
						return f.CallMut(arg), true
					}), in)
				},
				callSync: func(fn any, arg A) R { return fn.(F).CallMut(arg) },
				release:  storage.NewReleaseTable[F](),
			}
		},
	)
}

func syncTableByOnce[A, R any, F dynfn.OnceCallable[A, R]]() *asyncTable[A, R] {
	return loadAsyncTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvAsyncSyncOne),
		func() any {
			return &asyncTable[A, R]{
				call: func(fn any, arg A, in storage.Maker) *Pending[R] {
					f := fn.(F)
					return newPending[R](FutureFunc[R](func(context.Context) (R, bool) {
						return f.CallOnce(arg), true
					}), in)
				},
				callSync: func(fn any, arg A) R { return fn.(F).CallOnce(arg) },
				release:  storage.NewReleaseTable[F](),
			}
		},
	)
}
