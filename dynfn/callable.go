package dynfn

// Callable is the by-reference calling convention: captured state is only
// read, so a container holding one may be invoked arbitrarily many times.
type Callable[A, R any] interface {
	Call(arg A) R
}

// MutCallable is the by-exclusive-reference calling convention: captured
// state may be read and written. Implementations should use a pointer
// receiver (or capture through a closure), or mutations will not survive
// the call.
type MutCallable[A, R any] interface {
	CallMut(arg A) R
}

// OnceCallable is the by-value-once calling convention: the one permitted
// invocation consumes the captured state.
type OnceCallable[A, R any] interface {
	CallOnce(arg A) R
}

// Func adapts a plain function to the by-reference convention.
type Func[A, R any] func(A) R

func (f Func[A, R]) Call(arg A) R { return f(arg) }

// MutFunc adapts a plain function to the by-exclusive-reference convention.
// The function's own captures are its mutable state.
type MutFunc[A, R any] func(A) R

func (f MutFunc[A, R]) CallMut(arg A) R { return f(arg) }

// OnceFunc adapts a plain function to the by-value-once convention.
type OnceFunc[A, R any] func(A) R

func (f OnceFunc[A, R]) CallOnce(arg A) R { return f(arg) }
