package recommend

import (
	"sort"

	"go.uber.org/zap"

	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

const (
	coPurchaseLimit   = 5
	similarUserLimit  = 10
	personalizedLimit = 8
	fallbackLimit     = 4
)

// OrderSource exposes the purchase history slices the recommenders need.
// Only confirmed orders count: Delivered, Verified and Confirmed, Shipped.
type OrderSource interface {
	// ConfirmedBasketsWithProduct returns the distinct product ids of every
	// confirmed order that contains productID, one slice per order.
	ConfirmedBasketsWithProduct(productID int) ([][]int, error)
	// ConfirmedProductIDs returns the distinct product ids the user has
	// bought across confirmed orders.
	ConfirmedProductIDs(userID int) ([]int, error)
	// SimilarUsers returns up to limit user ids who bought at least one of
	// the given products, ranked by how many they share, ties broken by the
	// lower user id. excludeUserID is never included.
	SimilarUsers(productIDs []int, excludeUserID, limit int) ([]int, error)
}

// ProductSource resolves product ids to catalog entries. product.Repository
// satisfies it.
type ProductSource interface {
	GetByID(id int) (product.Product, error)
	GetByIDs(ids []int) ([]product.Summary, error)
	ListByCategoryExcluding(category string, excludeID, limit int) ([]product.Summary, error)
	TopRated(limit int) ([]product.Summary, error)
}

type Service struct {
	orders   OrderSource
	products ProductSource
	logger   *zap.Logger
}

func NewService(orders OrderSource, products ProductSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, products: products, logger: logger}
}

// FrequentlyBoughtTogether ranks the products most often found alongside the
// given product in confirmed orders. When no confirmed order mentions the
// product, it falls back to other products from the same category. An unknown
// product yields an empty set, not an error.
func (s *Service) FrequentlyBoughtTogether(productID int) ([]product.Summary, error) {
	baskets, err := s.orders.ConfirmedBasketsWithProduct(productID)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, basket := range baskets {
		for _, id := range basket {
			if id == productID {
				continue
			}
			counts[id]++
		}
	}

	ranked := rankByCount(counts, coPurchaseLimit)
	if len(ranked) > 0 {
		return s.products.GetByIDs(ranked)
	}

	// only the category fallback needs the product itself
	p, err := s.products.GetByID(productID)
	if err != nil {
		if err == product.ErrNotFound {
			return []product.Summary{}, nil
		}
		return nil, err
	}
	return s.products.ListByCategoryExcluding(p.Category, productID, fallbackLimit)
}

// Personalized builds suggestions from the purchases of users with a similar
// history. New customers with no confirmed orders get the top rated catalog
// entries instead.
func (s *Service) Personalized(userID int) ([]product.Summary, error) {
	owned, err := s.orders.ConfirmedProductIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return s.products.TopRated(fallbackLimit)
	}

	similar, err := s.orders.SimilarUsers(owned, userID, similarUserLimit)
	if err != nil {
		return nil, err
	}

	ownedSet := make(map[int]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	counts := make(map[int]int)
	for _, uid := range similar {
		theirs, err := s.orders.ConfirmedProductIDs(uid)
		if err != nil {
			s.logger.Warn("skipping similar user", zap.Int("userId", uid), zap.Error(err))
			continue
		}
		for _, id := range theirs {
			if _, own := ownedSet[id]; own {
				continue
			}
			counts[id]++
		}
	}

	ranked := rankByCount(counts, personalizedLimit)
	if len(ranked) == 0 {
		return s.products.TopRated(fallbackLimit)
	}
	return s.products.GetByIDs(ranked)
}

// rankByCount orders ids by their count descending, ties broken by the lower
// id, and truncates to limit.
func rankByCount(counts map[int]int, limit int) []int {
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}
