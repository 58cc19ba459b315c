package validation

// Rule inspects a request and returns Success or a single failure.
type Rule[T any] func(T) Result

// And runs next only when r succeeds. Later rules may assume earlier ones
// held, so evaluation order is fixed and never accumulates failures.
func (r Rule[T]) And(next Rule[T]) Rule[T] {
	return func(v T) Result {
		if res := r(v); res != Success {
			return res
		}
		return next(v)
	}
}

// Chain folds rules left to right with And.
func Chain[T any](first Rule[T], rest ...Rule[T]) Rule[T] {
	out := first
	for _, r := range rest {
		out = out.And(r)
	}
	return out
}
