// Package result carries a value that is always usable, together with a flag
// saying whether it came from the normal path or from a fallback.
package result

// Result holds either a computed value or a fallback substitute. Value is
// always populated; Err explains why a fallback was used.
type Result[T any] struct {
	Value    T
	Err      error
	fallback bool
}

// OK wraps a value produced by the normal path.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fallback wraps a substitute value and the error that forced it.
func Fallback[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err, fallback: true}
}

// IsFallback reports whether Value is a substitute.
func (r Result[T]) IsFallback() bool {
	return r.fallback
}

// Unwrap returns the value regardless of how it was produced.
func (r Result[T]) Unwrap() T {
	return r.Value
}
