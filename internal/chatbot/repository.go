package chatbot

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("chatbot response not found")

type Repository interface {
	// ListActive returns active responses ordered by priority descending.
	ListActive() ([]Response, error)
	ListAll() ([]Response, error)
	Create(r Response) (Response, error)
	Update(id int, r Response) (Response, error)
	Delete(id int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu        sync.RWMutex
	responses []Response
	nextID    int
}

func NewInMemoryRepository(seed []Response) *InMemoryRepository {
	r := &InMemoryRepository{responses: append([]Response(nil), seed...), nextID: 1}
	for _, resp := range seed {
		if resp.ID >= r.nextID {
			r.nextID = resp.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) ListActive() ([]Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Response, 0, len(r.responses))
	for _, resp := range r.responses {
		if resp.Active {
			out = append(out, resp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Response, len(r.responses))
	copy(out, r.responses)
	return out, nil
}

func (r *InMemoryRepository) Create(resp Response) (Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if resp.ID == 0 {
		resp.ID = r.nextID
		r.nextID++
	}
	r.responses = append(r.responses, resp)
	return resp, nil
}

func (r *InMemoryRepository) Update(id int, resp Response) (Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.responses {
		if r.responses[i].ID == id {
			resp.ID = id
			r.responses[i] = resp
			return resp, nil
		}
	}
	return Response{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.responses {
		if r.responses[i].ID == id {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
