package product

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"product_id", "name", "description", "price", "category", "subcategory",
		"sizes", "stock", "ratings", "number_of_reviews", "image", "created_at", "updated_at",
	}).AddRow(1, "Cozy Sweater", "warm", 45.0, "sweaters", "pullover",
		"{S,M,L}", 5, 4.5, 12, "/img/sweater.jpg", "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z")

	mock.ExpectQuery(regexp.QuoteMeta(getProductQuery)).WithArgs(1).WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	p, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Cozy Sweater" || p.Stock != 5 || p.NumberOfReviews != 12 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if len(p.Sizes) != 3 || p.Sizes[0] != "S" {
		t.Fatalf("expected sizes decoded from array, got %v", p.Sizes)
	}
	if p.Image == nil || *p.Image != "/img/sweater.jpg" {
		t.Fatalf("unexpected image: %v", p.Image)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(getProductQuery)).WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

	repo := NewPostgresRepository(db)
	if _, err := repo.GetByID(42); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresGetByIDsPreservesOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"product_id", "name", "price", "category", "image", "ratings"}).
		AddRow(3, "Knit Hat", 15.0, "hats", nil, 4.2).
		AddRow(1, "Cozy Sweater", 45.0, "sweaters", nil, 4.5)

	mock.ExpectQuery(regexp.QuoteMeta(summaryByIDsQuery)).WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	got, err := repo.GetByIDs([]int{3, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ProductID != 3 || got[1].ProductID != 1 {
		t.Fatalf("expected the database order kept, got %+v", got)
	}
}

func TestPostgresDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(decrementStockQuery)).WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	if err := repo.DecrementStock(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresUpsertReviewRefreshesRatings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(upsertReviewQuery)).
		WithArgs(1, 42, "Jane", 4, "lovely", "2025-01-01T00:00:00Z").
		WillReturnRows(sqlmock.NewRows([]string{"review_id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(refreshRatingsQuery)).WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	rev, err := repo.UpsertReview(Review{ProductID: 1, UserID: 42, Name: "Jane", Rating: 4, Comment: "lovely", CreatedAt: "2025-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev.ID != 7 {
		t.Fatalf("expected review id 7, got %d", rev.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
