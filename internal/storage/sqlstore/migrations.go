package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// sqliteSchema contains the SQL statements to set up a SQLite database.
// customers must be created BEFORE bills due to the foreign key constraint.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    items TEXT NOT NULL,
    total DECIMAL(12,2) NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_name_phone ON customers(name, phone)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_customer_id ON bills(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills(created_at)`,
}

// mysqlSchema is the MySQL equivalent. The driver runs one statement per
// Exec, so indexes are declared inline.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    email VARCHAR(100),
    phone VARCHAR(15) NOT NULL,
    INDEX idx_customers_name_phone (name, phone)
)`,
	`CREATE TABLE IF NOT EXISTS bills (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    customer_id BIGINT NOT NULL,
    items TEXT NOT NULL,
    total DECIMAL(12,2) NOT NULL,
    created_at BIGINT NOT NULL,
    INDEX idx_bills_created_at (created_at),
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
)`,
}

// runMigrations executes the schema setup statements in order.
func runMigrations(ctx context.Context, db *sql.DB, schema []string) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return nil
}
