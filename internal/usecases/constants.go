package usecases

import "time"

// Identifier formats
const (
	AccountNumberDigits     = 10
	TransactionRefPrefix    = "TXN"
	InitialDepositRefPrefix = "INIT"
	LoanNumberPrefix        = "LOAN"
)

// Listing defaults
const (
	DefaultTransactionLimit = 10
	MaxTransactionLimit     = 100
)

// InitialDepositDescription is the description of the opening ledger entry
const InitialDepositDescription = "Initial deposit"

// timeNow is overridden in tests
var timeNow = time.Now
