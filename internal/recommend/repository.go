package recommend

import (
	"sort"

	"github.com/JananiSriSK/varu-knit-store/internal/order"
)

// OrderRepositorySource adapts an order.Repository into an OrderSource by
// scanning orders in memory. It backs tests and local runs; production uses
// PostgresRepository, which pushes the same filters into SQL.
type OrderRepositorySource struct {
	repo order.Repository
}

func NewOrderRepositorySource(repo order.Repository) *OrderRepositorySource {
	return &OrderRepositorySource{repo: repo}
}

func (s *OrderRepositorySource) ConfirmedBasketsWithProduct(productID int) ([][]int, error) {
	orders, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	out := make([][]int, 0)
	for _, o := range orders {
		if !o.IsConfirmed() {
			continue
		}
		ids := o.ProductIDs()
		for _, id := range ids {
			if id == productID {
				out = append(out, ids)
				break
			}
		}
	}
	return out, nil
}

func (s *OrderRepositorySource) ConfirmedProductIDs(userID int) ([]int, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, o := range orders {
		if !o.IsConfirmed() {
			continue
		}
		for _, id := range o.ProductIDs() {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *OrderRepositorySource) SimilarUsers(productIDs []int, excludeUserID, limit int) ([]int, error) {
	orders, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	wanted := make(map[int]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}

	// distinct shared products per user
	sharedByUser := make(map[int]map[int]struct{})
	for _, o := range orders {
		if o.UserID == excludeUserID || !o.IsConfirmed() {
			continue
		}
		for _, id := range o.ProductIDs() {
			if _, hit := wanted[id]; !hit {
				continue
			}
			if sharedByUser[o.UserID] == nil {
				sharedByUser[o.UserID] = make(map[int]struct{})
			}
			sharedByUser[o.UserID][id] = struct{}{}
		}
	}

	users := make([]int, 0, len(sharedByUser))
	for uid := range sharedByUser {
		users = append(users, uid)
	}
	sort.Slice(users, func(i, j int) bool {
		si, sj := len(sharedByUser[users[i]]), len(sharedByUser[users[j]])
		if si != sj {
			return si > sj
		}
		return users[i] < users[j]
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
