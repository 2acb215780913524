package chatbot

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	chatbotColumns = `response_id, keywords, reply, suggestions, priority, active`

	listActiveResponsesQuery = `
		SELECT ` + chatbotColumns + `
		FROM chatbot_responses
		WHERE active
		ORDER BY priority DESC, response_id
	`
	listAllResponsesQuery = `
		SELECT ` + chatbotColumns + `
		FROM chatbot_responses
		ORDER BY priority DESC, response_id
	`
	insertResponseQuery = `
		INSERT INTO chatbot_responses (keywords, reply, suggestions, priority, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING response_id
	`
	updateResponseQuery = `
		UPDATE chatbot_responses
		SET keywords = $2, reply = $3, suggestions = $4, priority = $5, active = $6
		WHERE response_id = $1
	`
	deleteResponseQuery = `DELETE FROM chatbot_responses WHERE response_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive() ([]Response, error) {
	return r.query(listActiveResponsesQuery)
}

func (r *PostgresRepository) ListAll() ([]Response, error) {
	return r.query(listAllResponsesQuery)
}

func (r *PostgresRepository) query(q string) ([]Response, error) {
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Response, 0)
	for rows.Next() {
		var (
			resp        Response
			keywords    pq.StringArray
			suggestions pq.StringArray
		)
		if err := rows.Scan(&resp.ID, &keywords, &resp.Reply, &suggestions, &resp.Priority, &resp.Active); err != nil {
			return nil, err
		}
		resp.Keywords = keywords
		resp.Suggestions = suggestions
		out = append(out, resp)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(resp Response) (Response, error) {
	err := r.db.QueryRow(
		insertResponseQuery,
		pq.Array(resp.Keywords), resp.Reply, pq.Array(resp.Suggestions), resp.Priority, resp.Active,
	).Scan(&resp.ID)
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (r *PostgresRepository) Update(id int, resp Response) (Response, error) {
	res, err := r.db.Exec(
		updateResponseQuery,
		id, pq.Array(resp.Keywords), resp.Reply, pq.Array(resp.Suggestions), resp.Priority, resp.Active,
	)
	if err != nil {
		return Response{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Response{}, ErrNotFound
	}
	resp.ID = id
	return resp, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteResponseQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
