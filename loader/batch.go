package loader

import (
	"context"
	"slices"
	"sync"
)

// Batch is the completion handle of one LoadRequired call.
type Batch struct {
	Generation uint64
	// Requested is every id asked for, flattened and deduplicated.
	Requested []string
	// Issued are the ids this batch handed to the engine loader.
	Issued []string

	mu        sync.Mutex
	waiting   map[string]struct{}
	warnings  []Warning
	missing   map[string]struct{}
	completed bool
	done      chan struct{}
	callbacks []func(*Batch)
}

func newBatch(generation uint64) *Batch {
	return &Batch{
		Generation: generation,
		waiting:    make(map[string]struct{}),
		missing:    make(map[string]struct{}),
		done:       make(chan struct{}),
	}
}

// Done is closed once the batch completes.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Completed reports whether the batch completed.
func (b *Batch) Completed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.completed
}

// Wait blocks until the batch completes or ctx ends. Giving up does not
// cancel the engine loads the batch issued.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnComplete registers fn to run when the batch completes. If it already has,
// fn runs immediately.
func (b *Batch) OnComplete(fn func(*Batch)) {
	b.mu.Lock()
	if !b.completed {
		b.callbacks = append(b.callbacks, fn)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	fn(b)
}

// Warnings lists every per-id problem reported so far.
func (b *Batch) Warnings() []Warning {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.warnings)
}

// Loaded lists the requested ids that are available in the engine. Only
// meaningful once the batch completed.
func (b *Batch) Loaded() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var ids []string
	for _, id := range b.Requested {
		if _, bad := b.missing[id]; bad {
			continue
		}
		if _, pending := b.waiting[id]; pending {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (b *Batch) warn(w Warning) {
	b.mu.Lock()
	b.warnings = append(b.warnings, w)
	b.missing[w.ID] = struct{}{}
	delete(b.waiting, w.ID)
	b.mu.Unlock()
}

func (b *Batch) waitFor(id string) {
	b.mu.Lock()
	b.waiting[id] = struct{}{}
	b.mu.Unlock()
}

func (b *Batch) waitsFor(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.waiting[id]
	return ok
}

// settle drops loaded ids from the waiting set and reports whether nothing
// is left to wait for.
func (b *Batch) settle(loaded func(string) bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id := range b.waiting {
		if loaded(id) {
			delete(b.waiting, id)
		}
	}
	return len(b.waiting) == 0
}

func (b *Batch) complete() {
	b.mu.Lock()
	if b.completed {
		b.mu.Unlock()
		return
	}
	b.completed = true
	callbacks := b.callbacks
	b.callbacks = nil
	close(b.done)
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn(b)
	}
}
