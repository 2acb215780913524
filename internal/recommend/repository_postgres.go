package recommend

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/JananiSriSK/varu-knit-store/internal/order"
)

// PostgresRepository answers the purchase-history queries directly in SQL
// over the orders and order_items tables.
type PostgresRepository struct {
	db *sql.DB
}

const (
	confirmedBasketsQuery = `
		SELECT oi.order_id, oi.product_id
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		WHERE o.status = ANY($2)
		  AND oi.order_id IN (SELECT order_id FROM order_items WHERE product_id = $1)
		ORDER BY oi.order_id, oi.order_item_id
	`
	confirmedProductIDsQuery = `
		SELECT DISTINCT oi.product_id
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		WHERE o.user_id = $1 AND o.status = ANY($2)
		ORDER BY oi.product_id
	`
	similarUsersQuery = `
		SELECT o.user_id, COUNT(DISTINCT oi.product_id) AS shared
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		WHERE o.user_id <> $1 AND o.status = ANY($2) AND oi.product_id = ANY($3::int[])
		GROUP BY o.user_id
		ORDER BY shared DESC, o.user_id ASC
		LIMIT $4
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ConfirmedBasketsWithProduct(productID int) ([][]int, error) {
	rows, err := r.db.Query(confirmedBasketsQuery, productID, pq.Array(order.ConfirmedStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([][]int, 0)
	var (
		current   []int
		currentID = -1
		seen      map[int]struct{}
	)
	for rows.Next() {
		var orderID, prodID int
		if err := rows.Scan(&orderID, &prodID); err != nil {
			return nil, err
		}
		if orderID != currentID {
			if current != nil {
				out = append(out, current)
			}
			currentID = orderID
			current = make([]int, 0, 4)
			seen = make(map[int]struct{})
		}
		if _, dup := seen[prodID]; dup {
			continue
		}
		seen[prodID] = struct{}{}
		current = append(current, prodID)
	}
	if current != nil {
		out = append(out, current)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ConfirmedProductIDs(userID int) ([]int, error) {
	rows, err := r.db.Query(confirmedProductIDsQuery, userID, pq.Array(order.ConfirmedStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SimilarUsers(productIDs []int, excludeUserID, limit int) ([]int, error) {
	rows, err := r.db.Query(similarUsersQuery, excludeUserID, pq.Array(order.ConfirmedStatuses), pq.Array(productIDs), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int, 0, limit)
	for rows.Next() {
		var uid, shared int
		if err := rows.Scan(&uid, &shared); err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}
