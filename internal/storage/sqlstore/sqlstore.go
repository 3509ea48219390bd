// Package sqlstore provides a database/sql implementation of the
// storage.Store interface for SQLite and MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billbook/internal/storage"
)

// Ensure SQLStore implements storage.Store
var _ storage.Store = (*SQLStore)(nil)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options selects the backend and where to find it.
type Options struct {
	// Driver is DriverSQLite or DriverMySQL.
	Driver string

	// Path is the SQLite database file. Ignored for MySQL.
	Path string

	// MySQL holds the connection parameters for DriverMySQL.
	MySQL MySQLOptions
}

// MySQLOptions are the parameters of a MySQL connection.
type MySQLOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN formats the options as a go-sql-driver/mysql data source name.
func (o MySQLOptions) DSN() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.DBName = o.Database
	return cfg.FormatDSN()
}

// SQLStore implements storage.Store on database/sql.
type SQLStore struct {
	db     *sql.DB
	schema []string
}

// Open connects to the backend named by opts.Driver. The connection is
// verified but the schema is left alone; call EnsureSchema once at startup.
func Open(ctx context.Context, opts Options) (*SQLStore, error) {
	var (
		dsn    string
		schema []string
	)
	switch opts.Driver {
	case DriverSQLite, "":
		opts.Driver = DriverSQLite
		// Create parent directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = opts.Path
		schema = sqliteSchema
	case DriverMySQL:
		dsn = opts.MySQL.DSN()
		schema = mysqlSchema
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", storage.ErrDatabase, err)
	}

	// One process-wide connection. This also keeps per-connection pragmas
	// in effect for every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to connect: %w", storage.ErrDatabase, err)
	}

	if opts.Driver == DriverSQLite {
		// Enable foreign keys
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: failed to enable foreign keys: %w", storage.ErrDatabase, err)
		}
	}

	return &SQLStore{db: db, schema: schema}, nil
}

// EnsureSchema creates the tables and indexes if they are absent.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if err := runMigrations(ctx, s.db, s.schema); err != nil {
		return dbError("run migrations", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func dbError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", storage.ErrDatabase, op, err)
}
