package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the direction of a balance change.
type TransactionType string

const (
	TransactionTypeTopup TransactionType = "topup"
	TransactionTypeSpend TransactionType = "spend"
)

// Transaction is an immutable audit record of one balance change.
// Amount is always the positive magnitude of the change; BalanceAfter is
// the wallet balance immediately after applying it. Replaying a user's
// transactions from zero, adding topups and subtracting spends, reproduces
// every BalanceAfter and the final balance.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"user_id"`
	Type         TransactionType `json:"type"`
	Amount       Money           `json:"amount"`
	BalanceAfter Money           `json:"balance_after"`
	Metadata     map[string]any  `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
}
