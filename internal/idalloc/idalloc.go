// Package idalloc issues the identifiers given to every fog node, sensor and
// actuator created during a single run.
//
// An Allocator is run-scoped: the orchestrator creates one per run and hands
// it to whichever topology builder it uses. It is not safe for concurrent use;
// topology construction is single-threaded.
package idalloc

// first is the first identifier handed out by a fresh allocator.
const first = 1

// Allocator hands out strictly increasing integer identifiers.
type Allocator struct {
	next int
}

// New returns an allocator whose first identifier is 1.
func New() *Allocator {
	return &Allocator{next: first}
}

// Next returns a fresh identifier. Identifiers are never reused.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Observe records an identifier that was assigned outside the allocator (for
// example, declared in a topology description) so that later calls to Next
// never return it or anything below it.
func (a *Allocator) Observe(id int) {
	if id >= a.next {
		a.next = id + 1
	}
}

// Peek returns the identifier the next call to Next would return.
func (a *Allocator) Peek() int {
	return a.next
}

// Reset re-initializes the allocator for a new run.
func (a *Allocator) Reset() {
	a.next = first
}
