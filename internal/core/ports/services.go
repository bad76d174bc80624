package ports

import (
	"context"

	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
)

// LedgerService owns all wallets and their transaction history. Credit and
// debit are atomic with respect to balance and history for a given user;
// operations on distinct users proceed concurrently.
type LedgerService interface {
	// GetWallet returns the wallet for userID, creating a zero-balance
	// wallet on first access. Never fails.
	GetWallet(ctx context.Context, userID string) *domain.Wallet

	// Credit adds funds and appends a topup transaction. Amount must be
	// non-negative; a zero amount records a zero-magnitude transaction.
	Credit(ctx context.Context, req CreditRequest) (*domain.Transaction, error)

	// Debit removes funds and appends a spend transaction. Fails with
	// insufficient-funds when amount exceeds the balance, leaving wallet
	// and history untouched.
	Debit(ctx context.Context, req DebitRequest) (*domain.Transaction, error)

	// ListTransactions returns the user's transactions in insertion order.
	ListTransactions(ctx context.Context, userID string) []domain.Transaction
}

// CreditRequest holds validated input for a wallet topup.
type CreditRequest struct {
	UserID   string
	Amount   domain.Money
	Source   string // merged into metadata under "source" when non-empty
	Metadata map[string]any
}

// DebitRequest holds validated input for a wallet spend.
type DebitRequest struct {
	UserID   string
	Amount   domain.Money
	Reason   string // merged into metadata under "reason" when non-empty
	Metadata map[string]any
}

// DrawEngine owns the gacha pool configuration and the random source.
// It spends through the ledger's debit contract and never touches wallet
// state directly.
type DrawEngine interface {
	// ListPools returns all configured pools in insertion order.
	ListPools(ctx context.Context) []domain.Pool

	// Draw debits the total cost for the requested pool and count, then
	// samples that many weighted outcomes. Payment failure produces no
	// outcomes.
	Draw(ctx context.Context, req DrawRequest) (*DrawResult, error)
}

// DrawRequest holds validated input for a gacha draw.
type DrawRequest struct {
	UserID   string
	PoolName string
	Count    int
	// Seed, when set, deterministically initializes a private random
	// source for this call only.
	Seed *int64
}

// DrawResult is the outcome of a successful draw.
type DrawResult struct {
	PoolName         string
	Count            int
	Items            []domain.DrawnItem
	RemainingBalance domain.Money
}
