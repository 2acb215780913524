package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrReviewNotFound = errors.New("review not found")
)

type Repository interface {
	List() []Product
	ListByCategory(category string) []Product
	GetByID(id int) (Product, error)
	// GetByIDs resolves ids to summaries, preserving the order of the ids
	// argument and silently skipping ids that no longer exist.
	GetByIDs(ids []int) ([]Summary, error)
	// ListByCategoryExcluding returns up to limit summaries from the given
	// category, never including excludeID.
	ListByCategoryExcluding(category string, excludeID, limit int) ([]Summary, error)
	// TopRated returns up to limit summaries ordered by ratings then review
	// count, both descending.
	TopRated(limit int) ([]Summary, error)
	Subcategories(category string) ([]string, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	// DecrementStock lowers stock by qty, clamping at zero. Best effort: the
	// order flow tolerates a failure here.
	DecrementStock(id, qty int) error

	ListReviews(productID int) ([]Review, error)
	// UpsertReview inserts or replaces the user's review and recomputes the
	// product's ratings average and review count.
	UpsertReview(rev Review) (Review, error)
	DeleteReview(productID, reviewID int) error
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu           sync.RWMutex
	storage      []Product
	reviews      []Review
	nextID       int
	nextReviewID int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage:      make([]Product, 0, len(seed)),
		nextID:       1,
		nextReviewID: 1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) ListByCategory(category string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByIDs(ids []int) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[int]Product, len(r.storage))
	for _, p := range r.storage {
		byID[p.ID] = p
	}

	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p.Summarize())
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByCategoryExcluding(category string, excludeID, limit int) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, limit)
	for _, p := range r.storage {
		if p.ID == excludeID || !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p.Summarize())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *InMemoryRepository) TopRated(limit int) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]Product, len(r.storage))
	copy(sorted, r.storage)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Ratings != sorted[j].Ratings {
			return sorted[i].Ratings > sorted[j].Ratings
		}
		return sorted[i].NumberOfReviews > sorted[j].NumberOfReviews
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}
	out := make([]Summary, 0, limit)
	for _, p := range sorted[:limit] {
		out = append(out, p.Summarize())
	}
	return out, nil
}

func (r *InMemoryRepository) Subcategories(category string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	out := make([]string, 0)
	for _, p := range r.storage {
		if !strings.EqualFold(p.Category, category) || p.Subcategory == "" {
			continue
		}
		if !seen[p.Subcategory] {
			seen[p.Subcategory] = true
			out = append(out, p.Subcategory)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			p.Ratings = r.storage[i].Ratings
			p.NumberOfReviews = r.storage[i].NumberOfReviews
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) DecrementStock(id, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Stock -= qty
			if r.storage[i].Stock < 0 {
				r.storage[i].Stock = 0
			}
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListReviews(productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Review, 0)
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpsertReview(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i := range r.reviews {
		if r.reviews[i].ProductID == rev.ProductID && r.reviews[i].UserID == rev.UserID {
			rev.ID = r.reviews[i].ID
			r.reviews[i] = rev
			found = true
			break
		}
	}
	if !found {
		rev.ID = r.nextReviewID
		r.nextReviewID++
		r.reviews = append(r.reviews, rev)
	}

	r.recomputeRatings(rev.ProductID)
	return rev, nil
}

func (r *InMemoryRepository) DeleteReview(productID, reviewID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].ProductID == productID && r.reviews[i].ID == reviewID {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			r.recomputeRatings(productID)
			return nil
		}
	}
	return ErrReviewNotFound
}

// recomputeRatings must be called with the write lock held.
func (r *InMemoryRepository) recomputeRatings(productID int) {
	total, count := 0, 0
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			total += rev.Rating
			count++
		}
	}
	for i := range r.storage {
		if r.storage[i].ID == productID {
			r.storage[i].NumberOfReviews = count
			if count > 0 {
				r.storage[i].Ratings = float64(total) / float64(count)
			} else {
				r.storage[i].Ratings = 0
			}
			return
		}
	}
}
