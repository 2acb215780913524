package otp

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("otp not found")

type Repository interface {
	// Upsert replaces any active code for the (email, purpose) pair.
	Upsert(c Code) (Code, error)
	Get(email, purpose string) (Code, error)
	// IncrementAttempts bumps the failed-guess counter and returns the new value.
	IncrementAttempts(id int) (int, error)
	Delete(id int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu     sync.Mutex
	codes  []Code
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Upsert(c Code) (Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.codes {
		if r.codes[i].Email == c.Email && r.codes[i].Purpose == c.Purpose {
			c.ID = r.codes[i].ID
			c.Attempts = 0
			r.codes[i] = c
			return c, nil
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.codes = append(r.codes, c)
	return c, nil
}

func (r *InMemoryRepository) Get(email, purpose string) (Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.Email == email && c.Purpose == purpose {
			return c, nil
		}
	}
	return Code{}, ErrNotFound
}

func (r *InMemoryRepository) IncrementAttempts(id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.codes {
		if r.codes[i].ID == id {
			r.codes[i].Attempts++
			return r.codes[i].Attempts, nil
		}
	}
	return 0, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.codes {
		if r.codes[i].ID == id {
			r.codes = append(r.codes[:i], r.codes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
