package notify

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertNotificationQuery = `
		INSERT INTO notifications (user_id, type, title, body, read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING notification_id
	`
	listNotificationsQuery = `
		SELECT notification_id, user_id, type, title, body, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY notification_id DESC
	`
	markReadQuery = `
		UPDATE notifications SET read = TRUE
		WHERE notification_id = $2 AND user_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(n Notification) (Notification, error) {
	err := r.db.QueryRow(insertNotificationQuery, n.UserID, n.Type, n.Title, n.Body, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Notification, error) {
	rows, err := r.db.Query(listNotificationsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkRead(userID, id int) error {
	res, err := r.db.Exec(markReadQuery, userID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
