package db

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Schema returns the embedded DDL for a database/sql driver name ("pgx" or "mysql").
func Schema(driverName string) (string, error) {
	var file string
	switch driverName {
	case "pgx", "postgres":
		file = "migrations/001_init.postgres.sql"
	case "mysql":
		file = "migrations/001_init.mysql.sql"
	default:
		return "", fmt.Errorf("no schema for driver %q", driverName)
	}
	b, err := migrations.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SplitStatements breaks a DDL script on ';' so each statement runs on its own;
// neither driver is configured for multi-statement exec.
func SplitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, dbx *sqlx.DB) (int, error) {
	script, err := Schema(dbx.DriverName())
	if err != nil {
		return 0, err
	}
	stmts := SplitStatements(script)
	for i, stmt := range stmts {
		if _, err := dbx.ExecContext(ctx, stmt); err != nil {
			return i, fmt.Errorf("exec statement %d: %w", i+1, err)
		}
	}
	return len(stmts), nil
}
