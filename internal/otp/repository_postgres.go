package otp

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	upsertOTPQuery = `
		INSERT INTO otps (email, phone, code_hash, purpose, attempts, expires_at, created_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		ON CONFLICT (email, purpose) DO UPDATE
		SET phone = EXCLUDED.phone, code_hash = EXCLUDED.code_hash, attempts = 0,
		    expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at
		RETURNING otp_id
	`
	getOTPQuery = `
		SELECT otp_id, email, phone, code_hash, purpose, attempts, expires_at, created_at
		FROM otps
		WHERE email = $1 AND purpose = $2
	`
	incrementOTPAttemptsQuery = `
		UPDATE otps SET attempts = attempts + 1 WHERE otp_id = $1 RETURNING attempts
	`
	deleteOTPQuery = `DELETE FROM otps WHERE otp_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(c Code) (Code, error) {
	err := r.db.QueryRow(upsertOTPQuery, c.Email, c.Phone, c.CodeHash, c.Purpose, c.ExpiresAt, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return Code{}, err
	}
	c.Attempts = 0
	return c, nil
}

func (r *PostgresRepository) Get(email, purpose string) (Code, error) {
	var c Code
	err := r.db.QueryRow(getOTPQuery, email, purpose).Scan(
		&c.ID, &c.Email, &c.Phone, &c.CodeHash, &c.Purpose, &c.Attempts, &c.ExpiresAt, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return Code{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) IncrementAttempts(id int) (int, error) {
	var attempts int
	err := r.db.QueryRow(incrementOTPAttemptsQuery, id).Scan(&attempts)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return attempts, err
}

func (r *PostgresRepository) Delete(id int) error {
	_, err := r.db.Exec(deleteOTPQuery, id)
	return err
}
