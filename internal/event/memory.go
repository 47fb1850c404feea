package event

import (
	"context"
	"sync"
)

// MemoryRepository keeps queues in process memory. It is the default backend
// for development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	queues map[string][]Event
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{queues: make(map[string][]Event)}
}

func (r *MemoryRepository) Append(_ context.Context, playerKey string, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queues[playerKey] = append(r.queues[playerKey], ev)
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, playerKey string) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	queue := r.queues[playerKey]
	out := make([]Event, len(queue))
	copy(out, queue)
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, playerKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.queues, playerKey)
	return nil
}
