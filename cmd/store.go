package cmd

import (
	"fmt"

	"github.com/horsepowerelectrical/contact-api/internal/config"
	"github.com/horsepowerelectrical/contact-api/internal/db"
	"github.com/horsepowerelectrical/contact-api/internal/postgrest"
	"github.com/horsepowerelectrical/contact-api/internal/repository"
	"github.com/jmoiron/sqlx"
)

func openSQL(c config.Config) (*sqlx.DB, error) {
	opts := db.Opts{
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		PingTimeout:     c.Database.PingTimeout,
	}
	switch c.Store.Driver {
	case config.DriverPostgres:
		return db.NewPostgresConnection(c.Database.DSN, opts)
	case config.DriverMySQL:
		return db.NewMySQLConnection(c.Database.DSN, opts)
	default:
		return nil, fmt.Errorf("store.driver %q is not a SQL driver", c.Store.Driver)
	}
}

// openStore returns the submissions repository for the configured driver and
// a func that releases its resources.
func openStore(c config.Config) (repository.SubmissionsRepository, func(), error) {
	if c.Store.Driver == config.DriverPostgREST {
		client := postgrest.NewClient(c.Store.URL, c.Store.Key, postgrest.Options{
			Timeout:       c.Store.Timeout,
			FailThreshold: c.Store.Breaker.FailThreshold,
			OpenFor:       c.Store.Breaker.OpenFor,
		})
		return repository.NewRESTSubmissionsRepository(client, c.Store.Table), func() {}, nil
	}

	sqlDB, err := openSQL(c)
	if err != nil {
		return nil, nil, fmt.Errorf("%s connect: %w", c.Store.Driver, err)
	}
	return repository.NewSubmissionsRepository(sqlDB), func() { _ = sqlDB.Close() }, nil
}
