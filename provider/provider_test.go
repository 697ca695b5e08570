package provider

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string                       { return s.name }
func (s *stubProvider) IsAvailable(_ context.Context) bool { return true }

func TestRegistry_ResolveAndNames(t *testing.T) {
	r := NewRegistry[*stubProvider]()
	r.Register("beta", func() (*stubProvider, error) {
		return &stubProvider{name: "beta"}, nil
	})
	r.Register("alpha", func() (*stubProvider, error) {
		return &stubProvider{name: "alpha"}, nil
	})

	l, err := r.Resolve("beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := l.Get()
	if err != nil || p.Name() != "beta" {
		t.Errorf("expected beta instance, got %v %v", p, err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected sorted [alpha beta], got %v", names)
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry[*stubProvider]()
	r.Register("alpha", func() (*stubProvider, error) {
		return &stubProvider{name: "alpha"}, nil
	})

	if _, err := r.Resolve("missing"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

func TestRegistry_FactoryRunsOnceAcrossResolves(t *testing.T) {
	var calls atomic.Int32
	r := NewRegistry[*stubProvider]()
	r.Register("stub", func() (*stubProvider, error) {
		calls.Add(1)
		return &stubProvider{name: "stub"}, nil
	})

	if calls.Load() != 0 {
		t.Fatal("expected registration not to construct")
	}

	first, err := r.Resolve("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected resolves to share one handle")
	}

	if _, err := first.Get(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := second.Get(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one construction, got %d", calls.Load())
	}
}

func TestLazy_ConstructsOnce(t *testing.T) {
	var calls atomic.Int32
	l := NewLazy(func() (*stubProvider, error) {
		calls.Add(1)
		return &stubProvider{name: "once"}, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := l.Get()
			if err != nil || p.Name() != "once" {
				t.Errorf("unexpected result: %v %v", p, err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected exactly one construction, got %d", calls.Load())
	}
}

func TestLazy_StickyError(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	l := NewLazy(func() (*stubProvider, error) {
		calls++
		return nil, boom
	})

	if _, err := l.Get(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := l.Get(); !errors.Is(err, boom) {
		t.Fatalf("expected sticky boom, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one construction attempt, got %d", calls)
	}
}
