package user

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `user_id, name, email, password, phone, role, verified, avatar_url, wishlist, created_at, updated_at`

	listUsersQuery = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY user_id
	`
	getUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(email) = lower($1)
	`
	insertUserQuery = `
		INSERT INTO users (name, email, password, phone, role, verified, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET name = $2, email = $3, phone = $4, avatar_url = $5, updated_at = $6
		WHERE user_id = $1
	`
	updatePasswordQuery = `UPDATE users SET password = $2, updated_at = $3 WHERE user_id = $1`
	updateRoleQuery     = `UPDATE users SET role = $2, updated_at = $3 WHERE user_id = $1`
	setVerifiedQuery    = `UPDATE users SET verified = TRUE, updated_at = $2 WHERE user_id = $1`
	deleteUserQuery     = `DELETE FROM users WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	if u.Role == "" {
		u.Role = RoleUser
	}
	avatar := sql.NullString{}
	if u.AvatarURL != nil {
		avatar = sql.NullString{String: *u.AvatarURL, Valid: true}
	}
	err := r.db.QueryRow(
		insertUserQuery,
		u.Name, u.Email, u.Password, u.Phone, u.Role, u.Verified, avatar, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	avatar := sql.NullString{}
	if u.AvatarURL != nil {
		avatar = sql.NullString{String: *u.AvatarURL, Valid: true}
	}
	res, err := r.db.Exec(updateUserQuery, id, u.Name, u.Email, u.Phone, avatar, u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) UpdatePassword(id int, hash, updatedAt string) error {
	return r.execExpectingRow(updatePasswordQuery, id, hash, updatedAt)
}

func (r *PostgresRepository) UpdateRole(id int, role, updatedAt string) error {
	return r.execExpectingRow(updateRoleQuery, id, role, updatedAt)
}

func (r *PostgresRepository) SetVerified(id int, updatedAt string) error {
	return r.execExpectingRow(setVerifiedQuery, id, updatedAt)
}

func (r *PostgresRepository) Delete(id int) error {
	return r.execExpectingRow(deleteUserQuery, id)
}

func (r *PostgresRepository) execExpectingRow(query string, args ...any) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (User, error) {
	var (
		u        User
		avatar   sql.NullString
		wishlist pq.Int64Array
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.Verified,
		&avatar, &wishlist, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	if len(wishlist) > 0 {
		u.WishlistProductIDs = make([]int, 0, len(wishlist))
		for _, id := range wishlist {
			u.WishlistProductIDs = append(u.WishlistProductIDs, int(id))
		}
	}
	return u, nil
}
