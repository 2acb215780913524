package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCartQuery = `
		SELECT product_id, quantity, size
		FROM cart_items
		WHERE user_id = $1
		ORDER BY cart_item_id
	`
	upsertCartQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity, size)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id, size) DO UPDATE SET quantity = EXCLUDED.quantity
	`
	deleteCartLineQuery = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2 AND size = $3`
	clearCartQuery      = `DELETE FROM cart_items WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]Item, error) {
	rows, err := r.db.Query(listCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Size); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Set(userID int, item Item) error {
	if item.Quantity <= 0 {
		_, err := r.db.Exec(deleteCartLineQuery, userID, item.ProductID, item.Size)
		return err
	}
	_, err := r.db.Exec(upsertCartQuery, userID, item.ProductID, item.Quantity, item.Size)
	return err
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(clearCartQuery, userID)
	return err
}
