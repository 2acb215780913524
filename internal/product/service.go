package product

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) ListByCategory(category string) []Product {
	return s.repo.ListByCategory(category)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByIDs(ids []int) ([]Summary, error) {
	return s.repo.GetByIDs(ids)
}

func (s *Service) Subcategories(category string) ([]string, error) {
	return s.repo.Subcategories(category)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) DecrementStock(id, qty int) error {
	return s.repo.DecrementStock(id, qty)
}

func (s *Service) ListReviews(productID int) ([]Review, error) {
	return s.repo.ListReviews(productID)
}

func (s *Service) UpsertReview(rev Review) (Review, error) {
	if _, err := s.repo.GetByID(rev.ProductID); err != nil {
		return Review{}, err
	}
	return s.repo.UpsertReview(rev)
}

func (s *Service) DeleteReview(productID, reviewID int) error {
	return s.repo.DeleteReview(productID, reviewID)
}
