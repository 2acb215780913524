package content

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getContentQuery = `SELECT doc FROM site_content WHERE key = $1`
	setContentQuery = `
		INSERT INTO site_content (key, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(key string) (json.RawMessage, error) {
	var doc []byte
	err := r.db.QueryRow(getContentQuery, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return doc, err
}

func (r *PostgresRepository) Set(key string, doc json.RawMessage, updatedAt string) error {
	_, err := r.db.Exec(setContentQuery, key, []byte(doc), updatedAt)
	return err
}
