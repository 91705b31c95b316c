// Package util collects small helpers shared across the application.
package util

// Stack is a LIFO of T. The zero value is an empty stack ready to use.
type Stack[T any] []T

// Push places item on top.
func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop removes and returns the top item, or the zero value when empty.
func (s *Stack[T]) Pop() T {
	var item T
	if n := len(*s); n > 0 {
		item = (*s)[n-1]
		*s = (*s)[:n-1]
	}
	return item
}

// Len reports how many items the stack holds.
func (s *Stack[T]) Len() int {
	return len(*s)
}
