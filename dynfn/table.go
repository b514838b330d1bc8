package dynfn

import (
	"github.com/on-the-ground/dyn_fn_go/internal/vtables"
	"github.com/on-the-ground/dyn_fn_go/shared/helper"
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// callTable is the dispatch table of a synchronous erased callable: one
// invoke entry and one release descriptor, built once per concrete type and
// calling convention.
type callTable[A, R any] struct {
	invoke  func(fn any, arg A) R
	release *storage.ReleaseTable
}

func loadTable[A, R any](key vtables.Key, build func() any) *callTable[A, R] {
	tab, ok := helper.GetTypedValueOf2[*callTable[A, R]](func() (any, bool) {
		return vtables.LoadOrBuild(key, build), true
	})
	if !ok {
		panic("dynfn: dispatch table registered with mismatched instantiation")
	}
	return tab
}

func tableByRef[A, R any, F Callable[A, R]]() *callTable[A, R] {
	return loadTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvByRef),
		func() any {
			return &callTable[A, R]{
				invoke:  func(fn any, arg A) R { return fn.(F).Call(arg) },
				release: storage.NewReleaseTable[F](),
			}
		},
	)
}

func tableByMutRef[A, R any, F MutCallable[A, R]]() *callTable[A, R] {
	return loadTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvByMutRef),
		func() any {
			return &callTable[A, R]{
				invoke:  func(fn any, arg A) R { return fn.(F).CallMut(arg) },
				release: storage.NewReleaseTable[F](),
			}
		},
	)
}

func tableByOnce[A, R any, F OnceCallable[A, R]]() *callTable[A, R] {
	return loadTable[A, R](
		vtables.KeyFor[F, A, R](vtables.ConvByOnce),
		func() any {
			return &callTable[A, R]{
				invoke:  func(fn any, arg A) R { return fn.(F).CallOnce(arg) },
				release: storage.NewReleaseTable[F](),
			}
		},
	)
}
