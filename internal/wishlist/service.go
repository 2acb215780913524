package wishlist

import (
	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

// ProductResolver turns stored ids back into catalog summaries.
// product.Repository satisfies it.
type ProductResolver interface {
	GetByID(id int) (product.Product, error)
	GetByIDs(ids []int) ([]product.Summary, error)
}

type Service struct {
	repo     Repository
	products ProductResolver
}

func NewService(repo Repository, products ProductResolver) *Service {
	return &Service{repo: repo, products: products}
}

// List resolves the user's wishlist to product summaries. Products deleted
// from the catalog drop out silently.
func (s *Service) List(userID int) ([]product.Summary, error) {
	ids, err := s.repo.ProductIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.products.GetByIDs(ids)
}

func (s *Service) Add(userID, productID int) error {
	if _, err := s.products.GetByID(productID); err != nil {
		return err
	}
	return s.repo.Add(userID, productID)
}

func (s *Service) Remove(userID, productID int) error {
	return s.repo.Remove(userID, productID)
}
