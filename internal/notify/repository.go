package notify

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(n Notification) (Notification, error)
	ListByUser(userID int) ([]Notification, error)
	MarkRead(userID, id int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu            sync.Mutex
	notifications []Notification
	nextID        int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(n Notification) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, n)
	return n, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, 0)
	// newest first
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) MarkRead(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}
