package client

import "sync"

// Action tracks the lifecycle of an asynchronous request the way the
// frontend's state containers do: pending sets the loading flag, a
// fulfilled result stores the value and clears loading, a rejected result
// records the message and clears loading. Overlapping runs are not
// deduplicated; the last one to settle wins.
type Action[T any] struct {
	mu       sync.Mutex
	inflight int
	value    T
	hasValue bool
	errMsg   string
}

// Run executes fn, moving the action through pending and then fulfilled or
// rejected. It blocks until fn returns; use Go for the fire-and-forget form.
func (a *Action[T]) Run(fn func() (T, error)) {
	a.begin()
	v, err := fn()
	a.settle(v, err)
}

// Go runs fn in its own goroutine and returns a channel closed when the
// action settles.
func (a *Action[T]) Go(fn func() (T, error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(fn)
	}()
	return done
}

// Loading reports whether a request is in flight.
func (a *Action[T]) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inflight > 0
}

// Value returns the last fulfilled value, if any.
func (a *Action[T]) Value() (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value, a.hasValue
}

// Err returns the last rejection message, or "" after a fulfilled run.
func (a *Action[T]) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Reset clears the stored value and error. In-flight runs still settle.
func (a *Action[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	var zero T
	a.value = zero
	a.hasValue = false
	a.errMsg = ""
}

func (a *Action[T]) begin() {
	a.mu.Lock()
	a.inflight++
	a.mu.Unlock()
}

func (a *Action[T]) settle(v T, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inflight--
	if err != nil {
		a.errMsg = err.Error()
		return
	}
	a.value = v
	a.hasValue = true
	a.errMsg = ""
}
