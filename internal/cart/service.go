package cart

import (
	"errors"

	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

var ErrInsufficientStock = errors.New("not enough stock")

// Catalog is the slice of the product repository the cart needs.
type Catalog interface {
	GetByID(id int) (product.Product, error)
	GetByIDs(ids []int) ([]product.Summary, error)
}

type Service struct {
	repo     Repository
	products Catalog
}

func NewService(repo Repository, products Catalog) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the cart with live catalog data joined in. Lines whose product
// has been removed from the catalog are dropped.
func (s *Service) Get(userID int) (Cart, error) {
	items, err := s.repo.List(userID)
	if err != nil {
		return Cart{}, err
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	summaries, err := s.products.GetByIDs(ids)
	if err != nil {
		return Cart{}, err
	}
	byID := make(map[int]product.Summary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ProductID] = sum
	}

	out := Cart{Lines: make([]Line, 0, len(items))}
	for _, item := range items {
		sum, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		line := Line{
			Summary:  sum,
			Quantity: item.Quantity,
			Size:     item.Size,
			Subtotal: sum.Price * float64(item.Quantity),
		}
		out.Lines = append(out.Lines, line)
		out.Total += line.Subtotal
	}
	return out, nil
}

// Set writes a cart line at the given quantity. Zero removes the line. The
// quantity is capped by the product's current stock.
func (s *Service) Set(userID int, item Item) error {
	if item.Quantity <= 0 {
		return s.repo.Set(userID, Item{ProductID: item.ProductID, Size: item.Size})
	}

	p, err := s.products.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if item.Quantity > p.Stock {
		return ErrInsufficientStock
	}
	return s.repo.Set(userID, item)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}
