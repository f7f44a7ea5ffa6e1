/*
Package deep provides an exclusive-owning pointer handle which may be copied
deeply.

A Ptr owns a single heap-allocated value. Like a unique pointer, it is meant to
have exactly one owner; unlike a unique pointer, it may be duplicated by
Clone, which copies the pointee, not the pointer. Ownership is transferred with
Take.

Go has no move semantics and no copy constructors: assigning a Ptr by value
aliases the pointee, coming with all the consequences of shared mutable state.
Clients should treat plain assignment as a borrow and use Clone or Take
whenever ownership is concerned.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package deep

// Cloner is implemented by values which know how to copy themselves deeply.
// Copy will use it in favour of a plain Go value copy.
type Cloner[T any] interface {
	Clone() T
}

// Copy returns a deep copy of v if v implements Cloner[T], and a Go value copy
// otherwise.
func Copy[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Ptr is an owning handle to a value of type T. The zero value is the null
// handle.
type Ptr[T any] struct {
	p *T
}

// New adopts p. The caller must not use p for anything else afterwards.
func New[T any](p *T) Ptr[T] {
	return Ptr[T]{p: p}
}

// Make allocates a new value initialized to v.
func Make[T any](v T) Ptr[T] {
	return Ptr[T]{p: &v}
}

// Get returns the raw pointer without giving up ownership. It is nil for the
// null handle.
func (d Ptr[T]) Get() *T {
	return d.p
}

// Value dereferences the handle. Dereferencing the null handle panics.
func (d Ptr[T]) Value() T {
	return *d.p
}

// IsNil reports whether d is the null handle.
func (d Ptr[T]) IsNil() bool {
	return d.p == nil
}

// Same reports whether d and other refer to the same address.
// It does not compare the pointees.
func (d Ptr[T]) Same(other Ptr[T]) bool {
	return d.p == other.p
}

// Release relinquishes ownership and returns the raw pointer. d is null
// afterwards.
func (d *Ptr[T]) Release() *T {
	p := d.p
	d.p = nil
	return p
}

// Reset drops the current pointee and adopts p, which may be nil.
func (d *Ptr[T]) Reset(p *T) {
	d.p = p
}

// Take moves ownership into the returned handle. d is null afterwards.
func (d *Ptr[T]) Take() Ptr[T] {
	return Ptr[T]{p: d.Release()}
}

// Clone allocates a deep copy of the pointee, see Copy. Cloning the null
// handle yields the null handle.
func (d Ptr[T]) Clone() Ptr[T] {
	if d.p == nil {
		return Ptr[T]{}
	}
	return Make(Copy(*d.p))
}

// Swap exchanges the pointees of d and other in constant time.
func (d *Ptr[T]) Swap(other *Ptr[T]) {
	d.p, other.p = other.p, d.p
}
