// Package repotest provides in-memory SQLite databases with the ledger schema for tests.
package repotest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Money columns are TEXT so decimals survive the round trip exactly.
var ledgerDDL = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT,
		first_name TEXT,
		last_name TEXT,
		role TEXT NOT NULL DEFAULT 'CUSTOMER',
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id),
		phone TEXT,
		address TEXT,
		city TEXT,
		state TEXT,
		zip_code TEXT,
		country TEXT,
		employment_status TEXT,
		annual_income TEXT,
		additional_info TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		account_number TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		balance TEXT NOT NULL,
		status TEXT NOT NULL,
		tenure INTEGER,
		interest_rate TEXT,
		maturity_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		reference TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE loans (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		loan_number TEXT NOT NULL UNIQUE,
		amount TEXT NOT NULL,
		interest TEXT NOT NULL,
		term INTEGER NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE loan_payments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL REFERENCES loans(id),
		amount TEXT NOT NULL,
		due_date DATETIME NOT NULL,
		created_at DATETIME
	);`,
}

// NewDB opens an empty in-memory database unique to t.
// A single connection serialises transactions the way row locks do on Postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewLedgerDB opens an in-memory database with the ledger tables created.
func NewLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	for _, q := range ledgerDDL {
		MustExec(t, db, q)
	}
	return db
}

// MustExec runs q and fails the test on error.
func MustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}
