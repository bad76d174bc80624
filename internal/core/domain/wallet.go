package domain

// Wallet represents a user's currency balance. Wallets are created lazily
// with a zero balance and mutated only through the ledger.
type Wallet struct {
	UserID   string `json:"user_id"`
	Balance  Money  `json:"balance"`
	Currency string `json:"currency"`
}
