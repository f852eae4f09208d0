// Package list implements the doubly linked list backing the cache's
// recency order. The front of the list is the most recently used entry,
// the back is the least recently used one.
package list

// Element is a node of a List. Elements are created by List operations
// and stay valid until removed.
type Element[V any] struct {
	Value V
	prev  *Element[V]
	next  *Element[V]
	root  bool
}

// Next returns the next list element or nil if e is the last element.
func (e *Element[V]) Next() *Element[V] {
	if e.next == nil || e.next.root {
		return nil
	}

	return e.next
}

// Prev returns the previous list element or nil if e is the first element.
func (e *Element[V]) Prev() *Element[V] {
	if e.prev == nil || e.prev.root {
		return nil
	}

	return e.prev
}

// List is a doubly linked list. The zero List is not usable, use New.
type List[V any] struct {
	root Element[V] // sentinel, root.next is the front, root.prev is the back
	n    int
}

// New returns an empty list.
func New[V any]() *List[V] {
	l := new(List[V])

	l.root.root = true
	l.root.next = &l.root
	l.root.prev = &l.root

	return l
}

// Len returns the number of elements in the list.
func (l *List[V]) Len() int { return l.n }

// Front returns the first element of the list or nil if the list is empty.
func (l *List[V]) Front() *Element[V] {
	if l.n == 0 {
		return nil
	}

	return l.root.next
}

// Back returns the last element of the list or nil if the list is empty.
func (l *List[V]) Back() *Element[V] {
	if l.n == 0 {
		return nil
	}

	return l.root.prev
}

// PushFront inserts v at the front of the list and returns its element.
func (l *List[V]) PushFront(v V) *Element[V] {
	return l.insert(&Element[V]{Value: v}, &l.root)
}

// PushBack inserts v at the back of the list and returns its element.
func (l *List[V]) PushBack(v V) *Element[V] {
	return l.insert(&Element[V]{Value: v}, l.root.prev)
}

// insert places e after at.
func (l *List[V]) insert(e, at *Element[V]) *Element[V] {
	e.prev = at
	e.next = at.next
	at.next.prev = e
	at.next = e
	l.n++

	return e
}

// MoveToFront moves e to the front of the list. e must be an element of l.
func (l *List[V]) MoveToFront(e *Element[V]) {
	if l.root.next == e {
		return
	}

	e.prev.next = e.next
	e.next.prev = e.prev

	e.prev = &l.root
	e.next = l.root.next
	l.root.next.prev = e
	l.root.next = e
}

// Remove removes e from the list and returns its value. e must be an
// element of l. The removed element is detached so it cannot reach the
// list anymore.
func (l *List[V]) Remove(e *Element[V]) V { //nolint:ireturn
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil

	l.n--

	return e.Value
}
