package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBulkheadLimitsConcurrency(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 2})

	var current, peak atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func() error {
				n := current.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				current.Add(-1)
				return nil
			})
			if err != nil {
				t.Errorf("Execute returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", got)
	}
	if b.InFlight() != 0 {
		t.Errorf("in flight = %d after completion, want 0", b.InFlight())
	}
}

func TestBulkheadPropagatesError(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})
	wantErr := errors.New("boom")

	err := b.Execute(context.Background(), func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestBulkheadWaitTimeout(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1, MaxWait: 20 * time.Millisecond})

	release := make(chan struct{})
	go b.Execute(context.Background(), func() error {
		<-release
		return nil
	})
	time.Sleep(10 * time.Millisecond)

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadTimeout) {
		t.Errorf("error = %v, want bulkhead timeout", err)
	}
	close(release)
}

func TestBulkheadContextCancellation(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})

	release := make(chan struct{})
	go b.Execute(context.Background(), func() error {
		<-release
		return nil
	})
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := b.Execute(ctx, func() error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	close(release)
}

func TestExecuteWithResult(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})

	got, err := ExecuteWithResult(context.Background(), b, func() (string, error) {
		return "value", nil
	})
	if err != nil {
		t.Fatalf("ExecuteWithResult returned error: %v", err)
	}
	if got != "value" {
		t.Errorf("result = %q, want value", got)
	}

	wantErr := errors.New("failed")
	_, err = ExecuteWithResult(context.Background(), b, func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}
