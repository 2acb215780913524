package wishlist

import (
	"testing"

	"github.com/JananiSriSK/varu-knit-store/internal/product"
)

func testCatalog() *product.Service {
	return product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Cozy Sweater", Price: 45, Category: "sweaters"},
		{ID: 2, Name: "Wool Scarf", Price: 20, Category: "scarves"},
	}))
}

func TestAddAndListWishlist(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), testCatalog())

	if err := svc.Add(7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Add(7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// adding twice is a no-op
	if err := svc.Add(7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.List(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != 1 || items[1].ProductID != 2 {
		t.Fatalf("unexpected wishlist: %+v", items)
	}
	if items[0].Name != "Cozy Sweater" {
		t.Fatalf("expected resolved summaries, got %+v", items[0])
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), testCatalog())
	if err := svc.Add(7, 99); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestRemoveFromWishlist(t *testing.T) {
	svc := NewService(NewInMemoryRepository(map[int][]int{7: {1, 2}}), testCatalog())

	if err := svc.Remove(7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, _ := svc.List(7)
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("expected only product 2 left, got %+v", items)
	}

	// removing something absent is fine
	if err := svc.Remove(7, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListDropsDeletedProducts(t *testing.T) {
	catalog := testCatalog()
	svc := NewService(NewInMemoryRepository(map[int][]int{7: {1, 2}}), catalog)

	if err := catalog.Delete(1); err != nil {
		t.Fatal(err)
	}
	items, err := svc.List(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("expected the deleted product to drop out, got %+v", items)
	}
}
