package recommend

import (
	"testing"

	"github.com/JananiSriSK/varu-knit-store/internal/order"
	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

func seedProducts() *product.InMemoryRepository {
	return product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Cozy Sweater", Category: "sweaters", Price: 45, Ratings: 4.5, NumberOfReviews: 12},
		{ID: 2, Name: "Wool Scarf", Category: "scarves", Price: 20, Ratings: 4.8, NumberOfReviews: 30},
		{ID: 3, Name: "Knit Hat", Category: "hats", Price: 15, Ratings: 4.2, NumberOfReviews: 5},
		{ID: 4, Name: "Baby Blanket", Category: "blankets", Price: 60, Ratings: 4.9, NumberOfReviews: 40},
		{ID: 5, Name: "Chunky Cardigan", Category: "sweaters", Price: 70, Ratings: 3.9, NumberOfReviews: 8},
		{ID: 6, Name: "Fingerless Mittens", Category: "mittens", Price: 12, Ratings: 4.0, NumberOfReviews: 3},
	})
}

func confirmedOrder(id, userID int, productIDs ...int) order.Order {
	items := make([]order.Item, 0, len(productIDs))
	for _, pid := range productIDs {
		items = append(items, order.Item{ProductID: pid, Quantity: 1, Price: 10})
	}
	return order.Order{ID: id, UserID: userID, Items: items, Status: order.StatusDelivered}
}

func TestFrequentlyBoughtTogetherRanksByCoOccurrence(t *testing.T) {
	orders := order.NewInMemoryRepository([]order.Order{
		confirmedOrder(1, 10, 1, 2, 3),
		confirmedOrder(2, 11, 1, 2),
		confirmedOrder(3, 12, 1, 4),
	})

	svc := NewService(NewOrderRepositorySource(orders), seedProducts(), nil)
	got, err := svc.FrequentlyBoughtTogether(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(got))
	}
	for i, s := range got {
		if s.ProductID != want[i] {
			t.Errorf("position %d: expected product %d, got %d", i, want[i], s.ProductID)
		}
		if s.ProductID == 1 {
			t.Errorf("recommendations must not include the product itself")
		}
	}
}

func TestFrequentlyBoughtTogetherIgnoresUnconfirmedOrders(t *testing.T) {
	cancelled := confirmedOrder(1, 10, 1, 2)
	cancelled.Status = order.StatusCancelled
	pending := confirmedOrder(2, 11, 1, 3)
	pending.Status = order.StatusVerificationPending
	orders := order.NewInMemoryRepository([]order.Order{
		cancelled,
		pending,
		confirmedOrder(3, 12, 1, 4),
	})

	svc := NewService(NewOrderRepositorySource(orders), seedProducts(), nil)
	got, err := svc.FrequentlyBoughtTogether(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 4 {
		t.Fatalf("expected only product 4 from the delivered order, got %+v", got)
	}
}

func TestFrequentlyBoughtTogetherTieBreaksOnLowerID(t *testing.T) {
	orders := order.NewInMemoryRepository([]order.Order{
		confirmedOrder(1, 10, 1, 5),
		confirmedOrder(2, 11, 1, 2),
	})

	svc := NewService(NewOrderRepositorySource(orders), seedProducts(), nil)
	got, err := svc.FrequentlyBoughtTogether(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ProductID != 2 || got[1].ProductID != 5 {
		t.Fatalf("expected tie broken toward lower id [2 5], got %+v", got)
	}
}

func TestFrequentlyBoughtTogetherFallsBackToCategory(t *testing.T) {
	orders := order.NewInMemoryRepository(nil)

	svc := NewService(NewOrderRepositorySource(orders), seedProducts(), nil)
	got, err := svc.FrequentlyBoughtTogether(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 5 {
		t.Fatalf("expected the other sweater as fallback, got %+v", got)
	}
}

func TestFrequentlyBoughtTogetherUnknownProduct(t *testing.T) {
	svc := NewService(NewOrderRepositorySource(order.NewInMemoryRepository(nil)), seedProducts(), nil)
	got, err := svc.FrequentlyBoughtTogether(999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected an empty recommendation set, got %+v", got)
	}
}

func TestPersonalizedNewUserGetsTopRated(t *testing.T) {
	svc := NewService(NewOrderRepositorySource(order.NewInMemoryRepository(nil)), seedProducts(), nil)
	got, err := svc.Personalized(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 top rated fallbacks, got %d", len(got))
	}
	if got[0].ProductID != 4 {
		t.Errorf("expected highest rated product first, got %d", got[0].ProductID)
	}
}

func TestPersonalizedExcludesOwnedProducts(t *testing.T) {
	orders := order.NewInMemoryRepository([]order.Order{
		confirmedOrder(1, 1, 1, 2),
		confirmedOrder(2, 2, 1, 3, 4),
		confirmedOrder(3, 3, 2, 3),
	})

	svc := NewService(NewOrderRepositorySource(orders), seedProducts(), nil)
	got, err := svc.Personalized(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// users 2 and 3 share history with user 1; product 3 appears twice,
	// product 4 once, products 1 and 2 are already owned
	want := []int{3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %+v", len(want), got)
	}
	for i, s := range got {
		if s.ProductID != want[i] {
			t.Errorf("position %d: expected product %d, got %d", i, want[i], s.ProductID)
		}
		if s.ProductID == 1 || s.ProductID == 2 {
			t.Errorf("owned product %d must not be recommended", s.ProductID)
		}
	}
}

func TestSimilarUsersRankedBySharedProducts(t *testing.T) {
	orders := order.NewInMemoryRepository([]order.Order{
		confirmedOrder(1, 2, 1),
		confirmedOrder(2, 3, 1, 2),
		confirmedOrder(3, 4, 5),
	})

	src := NewOrderRepositorySource(orders)
	users, err := src.SimilarUsers([]int{1, 2}, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0] != 3 || users[1] != 2 {
		t.Fatalf("expected [3 2], got %v", users)
	}
}
