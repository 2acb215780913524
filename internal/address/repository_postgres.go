package address

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	addressColumns = `address_id, user_id, label, line, city, state, country, pin_code, phone, is_default`

	listAddressesQuery = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, address_id
	`
	getAddressQuery = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE address_id = $1
	`
	insertAddressQuery = `
		INSERT INTO addresses (user_id, label, line, city, state, country, pin_code, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING address_id
	`
	updateAddressQuery = `
		UPDATE addresses
		SET label = $2, line = $3, city = $4, state = $5, country = $6, pin_code = $7, phone = $8
		WHERE address_id = $1
		RETURNING ` + addressColumns + `
	`
	deleteAddressQuery       = `DELETE FROM addresses WHERE address_id = $1`
	clearDefaultAddressQuery = `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`
	setDefaultAddressQuery   = `UPDATE addresses SET is_default = TRUE WHERE user_id = $1 AND address_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(listAddressesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(getAddressQuery, id))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(
		insertAddressQuery,
		a.UserID, a.Label, a.Line, a.City, a.State, a.Country, a.PinCode, a.Phone, a.IsDefault,
	).Scan(&a.ID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(id int, a Address) (Address, error) {
	updated, err := scanAddress(r.db.QueryRow(
		updateAddressQuery,
		id, a.Label, a.Line, a.City, a.State, a.Country, a.PinCode, a.Phone,
	))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteAddressQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetDefault(userID, id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(clearDefaultAddressQuery, userID); err != nil {
		return err
	}
	res, err := tx.Exec(setDefaultAddressQuery, userID, id)
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

func scanAddress(row rowScanner) (Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Line, &a.City,
		&a.State, &a.Country, &a.PinCode, &a.Phone, &a.IsDefault,
	)
	return a, err
}
