package transcription

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeHandle struct{ id string }

func (h *fakeHandle) ModelID() string { return h.id }

// countingLoader counts loads and optionally blocks until released.
type countingLoader struct {
	loads   atomic.Int64
	err     error
	release chan struct{}
}

func (l *countingLoader) Load(_ context.Context, modelID string, _ ComputeTarget) (ModelHandle, error) {
	l.loads.Add(1)
	if l.release != nil {
		<-l.release
	}
	if l.err != nil {
		return nil, l.err
	}
	return &fakeHandle{id: modelID}, nil
}

func TestModelCacheLoadsOnce(t *testing.T) {
	cache := newModelCache()
	loader := &countingLoader{}
	target := ComputeTarget{Device: DeviceCPU, ComputeType: "float32"}

	for i := 0; i < 5; i++ {
		handle, err := cache.Get(context.Background(), "base", target, loader)
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if handle.ModelID() != "base" {
			t.Errorf("handle model = %q, want base", handle.ModelID())
		}
	}
	if got := loader.loads.Load(); got != 1 {
		t.Errorf("loads = %d, want exactly 1", got)
	}
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1", cache.Len())
	}
}

func TestModelCacheConcurrentFirstUse(t *testing.T) {
	cache := newModelCache()
	loader := &countingLoader{release: make(chan struct{})}
	target := ComputeTarget{Device: DeviceCPU, ComputeType: "float32"}

	const callers = 20
	var wg sync.WaitGroup
	errs := make([]error, callers)
	handles := make([]ModelHandle, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = cache.Get(context.Background(), "base", target, loader)
		}(i)
	}

	// Give every caller time to join the in-flight load before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(loader.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d error: %v", i, errs[i])
		}
		if handles[i].ModelID() != "base" {
			t.Errorf("caller %d handle = %q, want base", i, handles[i].ModelID())
		}
	}
	if got := loader.loads.Load(); got != 1 {
		t.Errorf("loads = %d, want exactly 1 under concurrency", got)
	}
}

func TestModelCacheFailedLoadNotCached(t *testing.T) {
	cache := newModelCache()
	loader := &countingLoader{err: stderrors.New("out of memory")}
	target := ComputeTarget{Device: DeviceCPU, ComputeType: "float32"}

	if _, err := cache.Get(context.Background(), "base", target, loader); err == nil {
		t.Fatal("Get succeeded, want load error")
	}
	if cache.Len() != 0 {
		t.Errorf("cache size = %d after failed load, want 0", cache.Len())
	}

	// The next caller retries and succeeds.
	loader.err = nil
	handle, err := cache.Get(context.Background(), "base", target, loader)
	if err != nil {
		t.Fatalf("retry Get returned error: %v", err)
	}
	if handle.ModelID() != "base" {
		t.Errorf("handle = %q, want base", handle.ModelID())
	}
	if got := loader.loads.Load(); got != 2 {
		t.Errorf("loads = %d, want 2 (failure then retry)", got)
	}
}

func TestModelCacheCallerCancellation(t *testing.T) {
	cache := newModelCache()
	loader := &countingLoader{release: make(chan struct{})}
	target := ComputeTarget{Device: DeviceCPU, ComputeType: "float32"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "base", target, loader)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("canceled caller did not return")
	}

	// The load keeps running and publishes for later callers.
	close(loader.release)
	handle, err := cache.Get(context.Background(), "base", target, loader)
	if err != nil {
		t.Fatalf("Get after detached load: %v", err)
	}
	if handle.ModelID() != "base" {
		t.Errorf("handle = %q, want base", handle.ModelID())
	}
	if got := loader.loads.Load(); got != 1 {
		t.Errorf("loads = %d, want the detached load reused", got)
	}
}

func TestModelCacheDistinctModels(t *testing.T) {
	cache := newModelCache()
	loader := &countingLoader{}
	target := ComputeTarget{Device: DeviceCPU, ComputeType: "float32"}

	for _, model := range []string{"base", "small", "base"} {
		if _, err := cache.Get(context.Background(), model, target, loader); err != nil {
			t.Fatalf("Get(%q): %v", model, err)
		}
	}
	if got := loader.loads.Load(); got != 2 {
		t.Errorf("loads = %d, want one per distinct model", got)
	}
	if cache.Len() != 2 {
		t.Errorf("cache size = %d, want 2", cache.Len())
	}
}
