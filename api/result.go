package api

// Result is the outcome of a best-effort read. A read either yields a value
// or is unavailable; it never fails the caller.
type Result[T any] struct {
	value T
	ok    bool
	err   error
}

// Available wraps a successfully fetched value.
func Available[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Unavailable records why a read produced nothing.
func Unavailable[T any](cause error) Result[T] {
	return Result[T]{err: cause}
}

// Get returns the value and whether it is available.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// OK reports whether the read succeeded.
func (r Result[T]) OK() bool {
	return r.ok
}

// ValueOr returns the value, or fallback when unavailable.
func (r Result[T]) ValueOr(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.value
}

// Cause is the error that made the read unavailable, if any.
func (r Result[T]) Cause() error {
	return r.err
}
