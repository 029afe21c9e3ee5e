package db

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// NewPostgresConnection opens a Postgres pool through pgx's database/sql driver.
// Supabase direct and pooler connection strings both work here.
func NewPostgresConnection(dsn string, opts Opts) (*sqlx.DB, error) {
	return open("pgx", dsn, opts)
}
