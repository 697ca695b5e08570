package provider

import "sync"

// Lazy defers construction of an expensive shared provider until first use.
// Construction runs exactly once even under concurrent first-use; afterwards
// the instance is shared read-only by all in-flight invocations.
type Lazy[T any] struct {
	once  sync.Once
	build func() (T, error)
	inst  T
	err   error
}

// NewLazy wraps a constructor for once-guarded lazy initialization.
func NewLazy[T any](build func() (T, error)) *Lazy[T] {
	return &Lazy[T]{build: build}
}

// Get returns the shared instance, constructing it on first call.
// A construction error is sticky: every subsequent Get returns it.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.inst, l.err = l.build()
	})
	return l.inst, l.err
}
