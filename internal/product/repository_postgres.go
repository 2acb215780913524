package product

import (
	"database/sql"

	"github.com/lib/pq"
)

// PostgresRepository implements Repository over the products/reviews tables.
type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `product_id, name, description, price, category, subcategory, sizes, stock, ratings, number_of_reviews, image, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY product_id
	`
	listByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE lower(category) = lower($1)
		ORDER BY product_id
	`
	getProductQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1
	`
	summaryByIDsQuery = `
		SELECT product_id, name, price, category, image, ratings
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)
	`
	categoryExcludingQuery = `
		SELECT product_id, name, price, category, image, ratings
		FROM products
		WHERE lower(category) = lower($1) AND product_id <> $2
		ORDER BY product_id
		LIMIT $3
	`
	topRatedQuery = `
		SELECT product_id, name, price, category, image, ratings
		FROM products
		ORDER BY ratings DESC, number_of_reviews DESC, product_id
		LIMIT $1
	`
	subcategoriesQuery = `
		SELECT DISTINCT subcategory
		FROM products
		WHERE lower(category) = lower($1) AND subcategory <> ''
		ORDER BY subcategory
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, category, subcategory, sizes, stock, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, subcategory = $6, sizes = $7, stock = $8, image = $9, updated_at = $10
		WHERE product_id = $1
	`
	deleteProductQuery  = `DELETE FROM products WHERE product_id = $1`
	decrementStockQuery = `UPDATE products SET stock = GREATEST(stock - $2, 0) WHERE product_id = $1`

	listReviewsQuery = `
		SELECT review_id, product_id, user_id, name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY review_id
	`
	upsertReviewQuery = `
		INSERT INTO reviews (product_id, user_id, name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, user_id)
		DO UPDATE SET name = EXCLUDED.name, rating = EXCLUDED.rating, comment = EXCLUDED.comment
		RETURNING review_id
	`
	deleteReviewQuery = `DELETE FROM reviews WHERE product_id = $1 AND review_id = $2`

	refreshRatingsQuery = `
		UPDATE products p
		SET ratings = COALESCE(agg.avg_rating, 0),
			number_of_reviews = COALESCE(agg.review_count, 0)
		FROM (
			SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
			FROM reviews WHERE product_id = $1
		) agg
		WHERE p.product_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	return r.queryProducts(listProductsQuery)
}

func (r *PostgresRepository) ListByCategory(category string) []Product {
	return r.queryProducts(listByCategoryQuery, category)
}

func (r *PostgresRepository) queryProducts(query string, args ...any) []Product {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByIDs(ids []int) ([]Summary, error) {
	if len(ids) == 0 {
		return []Summary{}, nil
	}
	return r.querySummaries(summaryByIDsQuery, pq.Array(ids))
}

func (r *PostgresRepository) ListByCategoryExcluding(category string, excludeID, limit int) ([]Summary, error) {
	return r.querySummaries(categoryExcludingQuery, category, excludeID, limit)
}

func (r *PostgresRepository) TopRated(limit int) ([]Summary, error) {
	return r.querySummaries(topRatedQuery, limit)
}

func (r *PostgresRepository) querySummaries(query string, args ...any) ([]Summary, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			s     Summary
			image sql.NullString
		)
		if err := rows.Scan(&s.ProductID, &s.Name, &s.Price, &s.Category, &image, &s.Ratings); err != nil {
			return nil, err
		}
		if image.Valid {
			s.Image = &image.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Subcategories(category string) ([]string, error) {
	rows, err := r.db.Query(subcategoriesQuery, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	image := sql.NullString{}
	if p.Image != nil {
		image = sql.NullString{String: *p.Image, Valid: true}
	}
	err := r.db.QueryRow(
		insertProductQuery,
		p.Name, p.Description, p.Price, p.Category, p.Subcategory,
		pq.Array(p.Sizes), p.Stock, image, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	image := sql.NullString{}
	if p.Image != nil {
		image = sql.NullString{String: *p.Image, Valid: true}
	}
	res, err := r.db.Exec(
		updateProductQuery,
		id, p.Name, p.Description, p.Price, p.Category, p.Subcategory,
		pq.Array(p.Sizes), p.Stock, image, p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DecrementStock(id, qty int) error {
	res, err := r.db.Exec(decrementStockQuery, id, qty)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListReviews(productID int) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Name, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpsertReview(rev Review) (Review, error) {
	err := r.db.QueryRow(
		upsertReviewQuery,
		rev.ProductID, rev.UserID, rev.Name, rev.Rating, rev.Comment, rev.CreatedAt,
	).Scan(&rev.ID)
	if err != nil {
		return Review{}, err
	}
	if _, err := r.db.Exec(refreshRatingsQuery, rev.ProductID); err != nil {
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) DeleteReview(productID, reviewID int) error {
	res, err := r.db.Exec(deleteReviewQuery, productID, reviewID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReviewNotFound
	}
	_, err = r.db.Exec(refreshRatingsQuery, productID)
	return err
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p     Product
		sizes pq.StringArray
		image sql.NullString
		sub   sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &sub,
		&sizes, &p.Stock, &p.Ratings, &p.NumberOfReviews, &image,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if sub.Valid {
		p.Subcategory = sub.String
	}
	p.Sizes = []string(sizes)
	if image.Valid {
		p.Image = &image.String
	}
	return p, nil
}
