package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billbook/internal/storage"
)

// AddBill persists a new bill and stamps its creation time.
func (s *SQLStore) AddBill(ctx context.Context, customerID int64, items string, total decimal.Decimal) (int64, time.Time, error) {
	createdAt := time.Now().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (customer_id, items, total, created_at) VALUES (?, ?, ?, ?)",
		customerID, items, total, createdAt.Unix(),
	)
	if err != nil {
		return 0, time.Time{}, dbError("insert bill", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, time.Time{}, dbError("read bill id", err)
	}
	return id, createdAt, nil
}

// UpdateBill overwrites the items and total of a bill. A missing id is
// not reported.
func (s *SQLStore) UpdateBill(ctx context.Context, id int64, items string, total decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE bills SET items = ?, total = ? WHERE id = ?",
		items, total, id,
	)
	if err != nil {
		return dbError("update bill", err)
	}
	return nil
}

// DeleteBill removes a bill by ID. The customer is kept.
func (s *SQLStore) DeleteBill(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return dbError("delete bill", err)
	}
	return nil
}

// GetAllBills retrieves all bills with their customer, newest first.
func (s *SQLStore) GetAllBills(ctx context.Context) ([]storage.BillRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.customer_id, c.name, c.email, c.phone, b.items, b.total, b.created_at
		FROM bills b
		JOIN customers c ON b.customer_id = c.id
		ORDER BY b.created_at DESC, b.id DESC
	`)
	if err != nil {
		return nil, dbError("list bills", err)
	}
	defer rows.Close()

	var bills []storage.BillRow
	for rows.Next() {
		var (
			row       storage.BillRow
			email     sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Name, &email, &row.Phone,
			&row.Items, &row.Total, &createdAt); err != nil {
			return nil, dbError("scan bill", err)
		}
		if email.Valid {
			row.Email = email.String
		}
		row.CreatedAt = time.Unix(createdAt, 0)
		bills = append(bills, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate bills", err)
	}

	return bills, nil
}
