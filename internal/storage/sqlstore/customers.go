package sqlstore

import (
	"context"
	"database/sql"
	"errors"
)

// AddCustomer returns the id of the customer with the given name and phone,
// creating the customer first if needed.
//
// The lookup and the insert are separate statements. That is fine for a
// single writer; two concurrent callers could both insert.
func (s *SQLStore) AddCustomer(ctx context.Context, name, email, phone string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM customers WHERE name = ? AND phone = ? ORDER BY id LIMIT 1",
		name, phone,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, dbError("look up customer", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)",
		name, email, phone,
	)
	if err != nil {
		return 0, dbError("insert customer", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, dbError("read customer id", err)
	}
	return id, nil
}
