package service

import (
	"context"
	"sync"
	"time"

	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/ports"
	"github.com/decarvalhoe/umbra-payment-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// account bundles one user's wallet with its append-only history.
// The mutex serializes the full check-and-mutate-and-append sequence of a
// credit or debit; accounts for different users never share a lock.
type account struct {
	mu      sync.Mutex
	wallet  domain.Wallet
	history []domain.Transaction
}

// LedgerServiceImpl implements ports.LedgerService over in-memory state.
type LedgerServiceImpl struct {
	mu       sync.RWMutex
	accounts map[string]*account
	currency string
	log      zerolog.Logger
}

// NewLedgerService creates an empty in-memory ledger.
func NewLedgerService(currency string, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accounts: make(map[string]*account),
		currency: currency,
		log:      log,
	}
}

// account returns the account for userID, creating it lazily.
func (s *LedgerServiceImpl) account(userID string) *account {
	s.mu.RLock()
	acc, ok := s.accounts[userID]
	s.mu.RUnlock()
	if ok {
		return acc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok = s.accounts[userID]; ok {
		return acc
	}
	acc = &account{
		wallet: domain.Wallet{
			UserID:   userID,
			Balance:  domain.ZeroMoney(),
			Currency: s.currency,
		},
	}
	s.accounts[userID] = acc
	return acc
}

// GetWallet implements ports.LedgerService.
func (s *LedgerServiceImpl) GetWallet(_ context.Context, userID string) *domain.Wallet {
	acc := s.account(userID)
	acc.mu.Lock()
	defer acc.mu.Unlock()
	wallet := acc.wallet
	return &wallet
}

// Credit implements ports.LedgerService. A zero amount is permitted and
// records a zero-magnitude topup.
func (s *LedgerServiceImpl) Credit(_ context.Context, req ports.CreditRequest) (*domain.Transaction, error) {
	if req.Amount.LessThan(domain.ZeroMoney()) {
		return nil, apperror.ErrInvalidAmount(domain.ErrNegativeAmount)
	}

	acc := s.account(req.UserID)
	acc.mu.Lock()
	acc.wallet.Balance = acc.wallet.Balance.Add(req.Amount)
	txn := s.appendLocked(acc, domain.TransactionTypeTopup, req.Amount,
		mergeMetadata("source", req.Source, req.Metadata))
	acc.mu.Unlock()

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID).
		Str("amount", req.Amount.String()).
		Str("balance", txn.BalanceAfter.String()).
		Msg("wallet credited")

	return txn, nil
}

// Debit implements ports.LedgerService. The funds check and the mutation
// happen under the account lock, so concurrent debits against the same
// wallet can never both spend the same funds.
func (s *LedgerServiceImpl) Debit(_ context.Context, req ports.DebitRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount(domain.ErrNegativeAmount)
	}

	acc := s.account(req.UserID)
	acc.mu.Lock()
	if acc.wallet.Balance.LessThan(req.Amount) {
		acc.mu.Unlock()
		return nil, apperror.ErrInsufficientFunds()
	}
	acc.wallet.Balance = acc.wallet.Balance.Sub(req.Amount)
	txn := s.appendLocked(acc, domain.TransactionTypeSpend, req.Amount,
		mergeMetadata("reason", req.Reason, req.Metadata))
	acc.mu.Unlock()

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID).
		Str("amount", req.Amount.String()).
		Str("balance", txn.BalanceAfter.String()).
		Msg("wallet debited")

	return txn, nil
}

// ListTransactions implements ports.LedgerService.
func (s *LedgerServiceImpl) ListTransactions(_ context.Context, userID string) []domain.Transaction {
	acc := s.account(userID)
	acc.mu.Lock()
	defer acc.mu.Unlock()
	out := make([]domain.Transaction, len(acc.history))
	copy(out, acc.history)
	return out
}

// appendLocked records an immutable transaction against the account's
// current balance. Caller holds acc.mu.
func (s *LedgerServiceImpl) appendLocked(acc *account, txType domain.TransactionType, amount domain.Money, metadata map[string]any) *domain.Transaction {
	txn := domain.Transaction{
		ID:           uuid.New(),
		UserID:       acc.wallet.UserID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: acc.wallet.Balance,
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}
	acc.history = append(acc.history, txn)
	return &txn
}

// mergeMetadata builds a transaction's metadata map. The system tag is
// inserted first and caller-supplied keys overwrite it on collision.
// The result is always non-nil.
func mergeMetadata(tagKey, tagValue string, metadata map[string]any) map[string]any {
	merged := make(map[string]any, len(metadata)+1)
	if tagValue != "" {
		merged[tagKey] = tagValue
	}
	for k, v := range metadata {
		merged[k] = v
	}
	return merged
}
