package dto

import (
	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/ports"
)

// TopupRequest is the request body for crediting a wallet. Amount accepts
// a JSON number or a numeric string.
type TopupRequest struct {
	Amount   any            `json:"amount" binding:"required"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata"`
}

// SpendRequest is the request body for debiting a wallet.
type SpendRequest struct {
	Amount   any            `json:"amount" binding:"required"`
	Reason   string         `json:"reason"`
	Metadata map[string]any `json:"metadata"`
}

// DrawRequest is the request body for a gacha draw. Pool defaults to the
// configured default pool and Draws to 1 when omitted.
type DrawRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Pool   string `json:"pool"`
	Draws  *int   `json:"draws"`
	Seed   *int64 `json:"seed"`
}

// WalletResponse is the outbound wallet representation.
type WalletResponse struct {
	UserID   string `json:"user_id"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// TransactionResponse is the outbound transaction representation.
type TransactionResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Type         string         `json:"type"`
	Amount       string         `json:"amount"`
	BalanceAfter string         `json:"balance_after"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    string         `json:"created_at"`
}

// WalletDetailResponse bundles a wallet with its transaction history.
type WalletDetailResponse struct {
	Wallet       WalletResponse        `json:"wallet"`
	Transactions []TransactionResponse `json:"transactions"`
}

// WalletTransactionResponse bundles a wallet with one created transaction.
type WalletTransactionResponse struct {
	Wallet      WalletResponse      `json:"wallet"`
	Transaction TransactionResponse `json:"transaction"`
}

// PoolItemResponse is one weighted entry of a pool.
type PoolItemResponse struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Weight int64  `json:"weight"`
}

// PoolResponse is the outbound pool representation.
type PoolResponse struct {
	Name  string             `json:"name"`
	Cost  string             `json:"cost"`
	Items []PoolItemResponse `json:"items"`
}

// PoolListResponse wraps the configured pools.
type PoolListResponse struct {
	Pools []PoolResponse `json:"pools"`
}

// DrawnItemResponse is one sampled outcome.
type DrawnItemResponse struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

// DrawResponse is the outbound draw result.
type DrawResponse struct {
	PoolName         string              `json:"pool_name"`
	DrawCount        int                 `json:"draw_count"`
	Items            []DrawnItemResponse `json:"items"`
	RemainingBalance string              `json:"remaining_balance"`
}

// NewWalletResponse converts a domain wallet.
func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		UserID:   w.UserID,
		Balance:  w.Balance.String(),
		Currency: w.Currency,
	}
}

// NewTransactionResponse converts a domain transaction. CreatedAt is
// rendered as ISO-8601 UTC.
func NewTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID.String(),
		UserID:       t.UserID,
		Type:         string(t.Type),
		Amount:       t.Amount.String(),
		BalanceAfter: t.BalanceAfter.String(),
		Metadata:     t.Metadata,
		CreatedAt:    t.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000Z07:00"),
	}
}

// NewTransactionResponses converts a transaction list.
func NewTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = NewTransactionResponse(&txns[i])
	}
	return out
}

// NewPoolResponse converts a domain pool.
func NewPoolResponse(p domain.Pool) PoolResponse {
	items := make([]PoolItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PoolItemResponse{
			Name:   item.Name,
			Rarity: string(item.Rarity),
			Weight: item.Weight,
		}
	}
	return PoolResponse{
		Name:  p.Name,
		Cost:  p.Cost.String(),
		Items: items,
	}
}

// NewDrawResponse converts a draw result.
func NewDrawResponse(r *ports.DrawResult) DrawResponse {
	items := make([]DrawnItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = DrawnItemResponse{Name: item.Name, Rarity: string(item.Rarity)}
	}
	return DrawResponse{
		PoolName:         r.PoolName,
		DrawCount:        r.Count,
		Items:            items,
		RemainingBalance: r.RemainingBalance.String(),
	}
}
