package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{User: "venue", Pass: "p@ss", Host: "db", Port: "3306", Name: "bookings"}

	parsed, err := mysql.ParseDSN(DSN(cfg, false))
	require.NoError(t, err)
	assert.Equal(t, "venue", parsed.User)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "bookings", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
	assert.False(t, parsed.MultiStatements)

	parsed, err = mysql.ParseDSN(DSN(cfg, true))
	require.NoError(t, err)
	assert.True(t, parsed.MultiStatements)
}
