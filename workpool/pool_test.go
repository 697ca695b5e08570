package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmit_ReturnsResult(t *testing.T) {
	p := New(2)
	f := Submit(context.Background(), p, func(_ context.Context) (int, error) {
		return 42, nil
	})
	v, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestSubmit_PropagatesError(t *testing.T) {
	p := New(1)
	boom := errors.New("boom")
	f := Submit(context.Background(), p, func(_ context.Context) (string, error) {
		return "", boom
	})
	if _, err := f.Wait(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestSubmit_BoundsConcurrency(t *testing.T) {
	const size = 3
	p := New(size)

	var running, peak atomic.Int32
	block := make(chan struct{})

	futures := make([]*Future[struct{}], 0, 10)
	for range 10 {
		f := Submit(context.Background(), p, func(_ context.Context) (struct{}, error) {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			<-block
			running.Add(-1)
			return struct{}{}, nil
		})
		futures = append(futures, f)
	}

	// Give the first workers time to claim their slots.
	time.Sleep(50 * time.Millisecond)
	close(block)

	for _, f := range futures {
		if _, err := f.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := peak.Load(); got > size {
		t.Errorf("expected at most %d concurrent tasks, saw %d", size, got)
	}
}

func TestSubmit_CanceledBeforeSlot(t *testing.T) {
	p := New(1)
	block := make(chan struct{})
	defer close(block)

	// Occupy the only slot.
	Submit(context.Background(), p, func(_ context.Context) (struct{}, error) {
		<-block
		return struct{}{}, nil
	})
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Bool
	f := Submit(ctx, p, func(_ context.Context) (struct{}, error) {
		ran.Store(true)
		return struct{}{}, nil
	})
	cancel()

	if _, err := f.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran.Load() {
		t.Error("task should never have run")
	}
}

func TestFuture_WaitCancel(t *testing.T) {
	p := New(1)
	block := make(chan struct{})
	defer close(block)

	f := Submit(context.Background(), p, func(_ context.Context) (struct{}, error) {
		<-block
		return struct{}{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
