package db

import (
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// NewMySQLConnection opens a MySQL pool. parseTime is forced on so created_at
// scans into time.Time.
func NewMySQLConnection(dsn string, opts Opts) (*sqlx.DB, error) {
	dsn, err := mysqlDSN(dsn)
	if err != nil {
		return nil, err
	}
	return open("mysql", dsn, opts)
}

func mysqlDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
