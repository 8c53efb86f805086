package domain

// Choice is a selection that is either "no filter" or exactly one value.
// The zero value is Any, so a category literally named "All" is still
// selectable.
type Choice[T comparable] struct {
	value T
	set   bool
}

// Any returns the no-filter choice.
func Any[T comparable]() Choice[T] {
	return Choice[T]{}
}

// Only returns a choice selecting exactly v.
func Only[T comparable](v T) Choice[T] {
	return Choice[T]{value: v, set: true}
}

// Get returns the selected value and true, or the zero value and false for Any.
func (c Choice[T]) Get() (T, bool) {
	return c.value, c.set
}

// IsAny reports whether the choice applies no filter.
func (c Choice[T]) IsAny() bool {
	return !c.set
}
