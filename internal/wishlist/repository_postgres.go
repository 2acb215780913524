package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
)

// PostgresRepository stores the wishlist as an integer[] column on the users
// table and mutates it with array_append / array_remove.
type PostgresRepository struct {
	db *sql.DB
}

const (
	selectWishlistQuery = `SELECT wishlist FROM users WHERE user_id = $1`
	addWishlistQuery    = `
		UPDATE users
		SET wishlist = array_append(wishlist, $2)
		WHERE user_id = $1 AND NOT ($2 = ANY(wishlist))
	`
	removeWishlistQuery = `
		UPDATE users
		SET wishlist = array_remove(wishlist, $2)
		WHERE user_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ProductIDs(userID int) ([]int, error) {
	var ids pq.Int64Array
	err := r.db.QueryRow(selectWishlistQuery, userID).Scan(&ids)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out, nil
}

func (r *PostgresRepository) Add(userID, productID int) error {
	_, err := r.db.Exec(addWishlistQuery, userID, productID)
	return err
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	_, err := r.db.Exec(removeWishlistQuery, userID, productID)
	return err
}
