package cart

import "sync"

// Repository stores the raw cart lines per user. Setting a quantity of zero
// or less removes the line.
type Repository interface {
	List(userID int) ([]Item, error)
	Set(userID int, item Item) error
	Clear(userID int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int][]Item)}
}

func (r *InMemoryRepository) List(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Item(nil), r.carts[userID]...), nil
}

func (r *InMemoryRepository) Set(userID int, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[userID]
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].Size == item.Size {
			if item.Quantity <= 0 {
				r.carts[userID] = append(items[:i], items[i+1:]...)
			} else {
				items[i].Quantity = item.Quantity
			}
			return nil
		}
	}
	if item.Quantity > 0 {
		r.carts[userID] = append(items, item)
	}
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
