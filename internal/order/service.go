package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockAdjuster lowers product stock after a sale. Decrements are best
// effort: a failure is logged and the order update proceeds.
type StockAdjuster interface {
	DecrementStock(id, qty int) error
}

// Events receives order lifecycle signals after the write has succeeded.
// Implementations are expected to hand the work to a background queue.
type Events interface {
	OrderCreated(ord Order)
	OrderStatusChanged(ord Order)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) OrderCreated(Order)       {}
func (NopEvents) OrderStatusChanged(Order) {}

type Service struct {
	repo   Repository
	stock  StockAdjuster
	events Events
	logger *zap.Logger
}

func NewService(repo Repository, stock StockAdjuster, events Events, logger *zap.Logger) *Service {
	if events == nil {
		events = NopEvents{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, stock: stock, events: events, logger: logger}
}

func (s *Service) Create(ord Order, userID int) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if len(ord.Items) == 0 {
		return Order{}, errors.New("order has no items")
	}
	for _, item := range ord.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.Price < 0 {
			return Order{}, errors.New("invalid order item")
		}
	}

	// totals are recomputed server-side; the client's figures are advisory
	itemPrice := 0.0
	for _, item := range ord.Items {
		itemPrice += item.Price * float64(item.Quantity)
	}
	ord.ItemPrice = itemPrice
	ord.TotalPrice = itemPrice + ord.TaxPrice + ord.ShippingPrice

	ord.UserID = userID
	ord.Status = StatusVerificationPending
	if ord.PaymentInfo.Reference == "" {
		ord.PaymentInfo.Reference = uuid.NewString()
	}
	if ord.PaymentInfo.Status == "" {
		ord.PaymentInfo.Status = "submitted"
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord.PaidAt = now
	ord.CreatedAt = now
	ord.UpdatedAt = now

	created, err := s.repo.Create(ord)
	if err != nil {
		return Order{}, err
	}

	s.events.OrderCreated(created)
	return created, nil
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

// ListAll returns every order along with the total revenue across them.
func (s *Service) ListAll() ([]Order, float64, error) {
	orders, err := s.repo.ListAll()
	if err != nil {
		return nil, 0, err
	}
	total := 0.0
	for _, o := range orders {
		total += o.TotalPrice
	}
	return orders, total, nil
}

// UpdateStatus moves an order through its lifecycle. Delivered orders are
// final. Stock is decremented per item on every transition, matching the
// storefront's best-effort inventory model.
func (s *Service) UpdateStatus(id int, status string) (Order, error) {
	valid := false
	for _, v := range ValidStatuses {
		if status == v {
			valid = true
			break
		}
	}
	if !valid {
		return Order{}, ErrInvalidStatus
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if existing.Status == StatusDelivered {
		return Order{}, ErrAlreadyDelivered
	}

	if s.stock != nil {
		for _, item := range existing.Items {
			if err := s.stock.DecrementStock(item.ProductID, item.Quantity); err != nil {
				s.logger.Warn("stock decrement failed",
					zap.Int("orderId", id),
					zap.Int("productId", item.ProductID),
					zap.Error(err),
				)
			}
		}
	}

	var deliveredAt *string
	if status == StatusDelivered {
		now := time.Now().UTC().Format(time.RFC3339)
		deliveredAt = &now
	}

	updated, err := s.repo.UpdateStatus(id, status, deliveredAt, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return Order{}, err
	}

	s.events.OrderStatusChanged(updated)
	return updated, nil
}

// Delete removes a delivered order. Undelivered orders cannot be deleted.
func (s *Service) Delete(id int) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.Status != StatusDelivered {
		return ErrNotDelivered
	}
	return s.repo.Delete(id)
}
