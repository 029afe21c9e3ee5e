package db

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSNForcesParseTime(t *testing.T) {
	for _, in := range []string{
		"u:p@tcp(db:3306)/site",
		"u:p@tcp(db:3306)/site?parseTime=false",
		"u:p@tcp(db:3306)/site?parseTime=true&charset=utf8mb4",
	} {
		out, err := mysqlDSN(in)
		require.NoError(t, err, in)

		cfg, err := mysql.ParseDSN(out)
		require.NoError(t, err, out)
		assert.True(t, cfg.ParseTime, out)
		assert.Equal(t, "site", cfg.DBName)
		assert.Equal(t, "db:3306", cfg.Addr)
		assert.Equal(t, "u", cfg.User)
	}
}

func TestMySQLDSNInvalid(t *testing.T) {
	_, err := mysqlDSN("u:p@tcp(db:3306)site")
	assert.Error(t, err)

	_, err = NewMySQLConnection("", Opts{})
	assert.Error(t, err)
}
