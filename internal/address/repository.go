package address

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	GetByID(id int) (Address, error)
	Create(a Address) (Address, error)
	Update(id int, a Address) (Address, error)
	Delete(id int) error
	// SetDefault marks the address as the user's default and clears the flag
	// on their other addresses.
	SetDefault(userID, id int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu        sync.RWMutex
	addresses []Address
	nextID    int
}

func NewInMemoryRepository(seed []Address) *InMemoryRepository {
	r := &InMemoryRepository{addresses: append([]Address(nil), seed...), nextID: 1}
	for _, a := range seed {
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, 0)
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.addresses {
		if a.ID == id {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	r.addresses = append(r.addresses, a)
	return a, nil
}

func (r *InMemoryRepository) Update(id int, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.addresses {
		if r.addresses[i].ID == id {
			a.ID = id
			a.UserID = r.addresses[i].UserID
			r.addresses[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.addresses {
		if r.addresses[i].ID == id {
			r.addresses = append(r.addresses[:i], r.addresses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) SetDefault(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for i := range r.addresses {
		if r.addresses[i].UserID != userID {
			continue
		}
		if r.addresses[i].ID == id {
			r.addresses[i].IsDefault = true
			found = true
		} else {
			r.addresses[i].IsDefault = false
		}
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
