package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"bank-ledger.backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConnectionHooks(t *testing.T) {
	t.Helper()
	origOpen, origPing := sqlOpen, dbPing
	t.Cleanup(func() { sqlOpen, dbPing = origOpen, origPing })
}

func unreachableConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "ledger",
		Password: "ledger",
		DBName:   "bank_ledger",
		SSLMode:  "disable",
	}
}

func TestNewConnection_UnreachableServer(t *testing.T) {
	db, err := NewConnection(unreachableConfig())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping database")
}

func TestNewConnection_OpenFailure(t *testing.T) {
	withConnectionHooks(t)
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "postgres", driver)
		assert.Contains(t, dsn, "dbname=bank_ledger")
		assert.Contains(t, dsn, "sslmode=disable")
		return nil, errors.New("bad dsn")
	}

	db, err := NewConnection(unreachableConfig())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestNewConnection_PingFailureIsWrapped(t *testing.T) {
	withConnectionHooks(t)
	dbPing = func(*sql.DB) error { return errors.New("refused") }

	db, err := NewConnection(unreachableConfig())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "refused")
}

func TestNewConnection_WrapsPoolInGorm(t *testing.T) {
	withConnectionHooks(t)
	// lib/pq connects lazily so the pool opens without a server
	dbPing = func(*sql.DB) error { return nil }

	db, err := NewConnection(unreachableConfig())
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)
	_ = sqlDB.Close()
}
