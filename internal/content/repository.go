package content

import (
	"encoding/json"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("content not found")

type Repository interface {
	Get(key string) (json.RawMessage, error)
	// Set stores the document under key, creating it if absent.
	Set(key string, doc json.RawMessage, updatedAt string) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewInMemoryRepository(seed map[string]json.RawMessage) *InMemoryRepository {
	docs := make(map[string]json.RawMessage, len(seed))
	for k, v := range seed {
		docs[k] = append(json.RawMessage(nil), v...)
	}
	return &InMemoryRepository{docs: docs}
}

func (r *InMemoryRepository) Get(key string) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append(json.RawMessage(nil), doc...), nil
}

func (r *InMemoryRepository) Set(key string, doc json.RawMessage, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = append(json.RawMessage(nil), doc...)
	return nil
}
