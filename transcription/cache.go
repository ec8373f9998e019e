package transcription

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ModelHandle is an opaque reference to a loaded model. The local backend
// treats a published handle as proof the sidecar holds the model in memory.
type ModelHandle interface {
	// ModelID returns the identifier the handle was loaded for.
	ModelID() string
}

// ModelLoader performs the slow load of a model onto a compute target.
// It is an interface so tests can count loads without a real backend.
type ModelLoader interface {
	Load(ctx context.Context, modelID string, target ComputeTarget) (ModelHandle, error)
}

// modelCache holds loaded model handles, keyed by model identifier.
//
// First use loads the model at most once even under concurrent access: the
// load runs in a singleflight group on its own goroutine, so waiting callers
// suspend without holding the cache lock, and subsequent reads of the
// published handle are taken under a read lock only.
type modelCache struct {
	mu      sync.RWMutex
	handles map[string]ModelHandle
	group   singleflight.Group
}

func newModelCache() *modelCache {
	return &modelCache{handles: make(map[string]ModelHandle)}
}

// Get returns the cached handle for modelID, loading and publishing it on
// first use. A failed load is not cached; the next caller retries.
func (c *modelCache) Get(ctx context.Context, modelID string, target ComputeTarget, loader ModelLoader) (ModelHandle, error) {
	c.mu.RLock()
	handle, ok := c.handles[modelID]
	c.mu.RUnlock()
	if ok {
		return handle, nil
	}

	// Detach the load from the caller: a canceled request must not abort a
	// load that other callers are waiting on.
	loadCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(modelID, func() (interface{}, error) {
		// Re-check under the lock: another flight may have published
		// between our read miss and this call.
		c.mu.RLock()
		existing, ok := c.handles[modelID]
		c.mu.RUnlock()
		if ok {
			return existing, nil
		}

		loaded, err := loader.Load(loadCtx, modelID, target)
		if err != nil {
			return nil, fmt.Errorf("load model %q: %w", modelID, err)
		}

		c.mu.Lock()
		c.handles[modelID] = loaded
		c.mu.Unlock()
		return loaded, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(ModelHandle), nil
	case <-ctx.Done():
		// The flight keeps running so a later caller can still benefit
		// from the completed load.
		return nil, ctx.Err()
	}
}

// Len returns the number of cached handles.
func (c *modelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}
