package wishlist

import (
	"errors"
	"sync"
)

var ErrUserNotFound = errors.New("user not found")

// Repository manages the wishlist array stored on the user row.
type Repository interface {
	ProductIDs(userID int) ([]int, error)
	Add(userID, productID int) error
	Remove(userID, productID int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	lists map[int][]int
}

func NewInMemoryRepository(seed map[int][]int) *InMemoryRepository {
	lists := make(map[int][]int, len(seed))
	for userID, ids := range seed {
		lists[userID] = append([]int(nil), ids...)
	}
	return &InMemoryRepository{lists: lists}
}

func (r *InMemoryRepository) ProductIDs(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int(nil), r.lists[userID]...), nil
}

func (r *InMemoryRepository) Add(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.lists[userID] {
		if id == productID {
			return nil
		}
	}
	r.lists[userID] = append(r.lists[userID], productID)
	return nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.lists[userID]
	for i, id := range ids {
		if id == productID {
			r.lists[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}
