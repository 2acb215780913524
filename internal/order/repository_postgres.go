package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// PostgresRepository stores orders across two tables: `orders` for the
// header (shipping and payment details as jsonb) and `order_items` for the
// lines, which the recommendation queries join against.
type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `order_id, user_id, shipping, payment, item_price, tax_price, shipping_price, total_price, status, paid_at, delivered_at, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (user_id, shipping, payment, item_price, tax_price, shipping_price, total_price, status, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING order_id
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, name, price, quantity, size, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	getOrderQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`
	listOrdersByUserQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY order_id DESC
	`
	listAllOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY order_id DESC
	`
	updateOrderStatusQuery = `
		UPDATE orders
		SET status = $2, delivered_at = COALESCE($3, delivered_at), updated_at = $4
		WHERE order_id = $1
	`
	deleteOrderQuery      = `DELETE FROM orders WHERE order_id = $1`
	deleteOrderItemsQuery = `DELETE FROM order_items WHERE order_id = $1`
	listItemsQuery        = `
		SELECT order_id, product_id, name, price, quantity, size, image
		FROM order_items
		WHERE order_id = ANY($1::int[])
		ORDER BY order_item_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	shipping, err := json.Marshal(ord.ShippingInfo)
	if err != nil {
		return Order{}, err
	}
	payment, err := json.Marshal(ord.PaymentInfo)
	if err != nil {
		return Order{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		insertOrderQuery,
		ord.UserID, shipping, payment,
		ord.ItemPrice, ord.TaxPrice, ord.ShippingPrice, ord.TotalPrice,
		ord.Status, ord.PaidAt, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for _, item := range ord.Items {
		if _, err := tx.Exec(insertOrderItemQuery, ord.ID, item.ProductID, item.Name, item.Price, item.Quantity, item.Size, item.Image); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	itemsByOrder, err := r.loadItems([]int{ord.ID})
	if err != nil {
		return Order{}, err
	}
	ord.Items = itemsByOrder[ord.ID]
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.queryOrders(listOrdersByUserQuery, userID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.queryOrders(listAllOrdersQuery)
}

func (r *PostgresRepository) queryOrders(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	ids := make([]int, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	itemsByOrder, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = itemsByOrder[out[i].ID]
	}
	return out, nil
}

func (r *PostgresRepository) loadItems(orderIDs []int) (map[int][]Item, error) {
	rows, err := r.db.Query(listItemsQuery, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]Item)
	for rows.Next() {
		var (
			orderID int
			item    Item
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.Size, &item.Image); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id int, status string, deliveredAt *string, updatedAt string) (Order, error) {
	delivered := sql.NullString{}
	if deliveredAt != nil {
		delivered = sql.NullString{String: *deliveredAt, Valid: true}
	}
	res, err := r.db.Exec(updateOrderStatusQuery, id, status, delivered, updatedAt)
	if err != nil {
		return Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteOrderItemsQuery, id); err != nil {
		return err
	}
	res, err := tx.Exec(deleteOrderQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord       Order
		shipping  []byte
		payment   []byte
		delivered sql.NullString
	)
	err := row.Scan(
		&ord.ID, &ord.UserID, &shipping, &payment,
		&ord.ItemPrice, &ord.TaxPrice, &ord.ShippingPrice, &ord.TotalPrice,
		&ord.Status, &ord.PaidAt, &delivered, &ord.CreatedAt, &ord.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(shipping, &ord.ShippingInfo); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(payment, &ord.PaymentInfo); err != nil {
		return Order{}, err
	}
	if delivered.Valid {
		ord.DeliveredAt = &delivered.String
	}
	return ord, nil
}
