package handler

import (
	"github.com/decarvalhoe/umbra-payment-service/internal/adapter/http/dto"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/ports"
	"github.com/decarvalhoe/umbra-payment-service/pkg/apperror"
	"github.com/decarvalhoe/umbra-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	ledger ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// GetWallet handles GET /api/v1/wallets/:user_id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID := c.Param("user_id")

	wallet := h.ledger.GetWallet(c.Request.Context(), userID)
	txns := h.ledger.ListTransactions(c.Request.Context(), userID)

	response.OK(c, dto.WalletDetailResponse{
		Wallet:       dto.NewWalletResponse(wallet),
		Transactions: dto.NewTransactionResponses(txns),
	})
}

// Topup handles POST /api/v1/wallets/:user_id/topup.
func (h *WalletHandler) Topup(c *gin.Context) {
	userID := c.Param("user_id")

	var req dto.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.ledger.Credit(c.Request.Context(), ports.CreditRequest{
		UserID:   userID,
		Amount:   amount,
		Source:   req.Source,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet := h.ledger.GetWallet(c.Request.Context(), userID)
	response.OK(c, dto.WalletTransactionResponse{
		Wallet:      dto.NewWalletResponse(wallet),
		Transaction: dto.NewTransactionResponse(txn),
	})
}

// Spend handles POST /api/v1/wallets/:user_id/spend.
func (h *WalletHandler) Spend(c *gin.Context) {
	userID := c.Param("user_id")

	var req dto.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.ledger.Debit(c.Request.Context(), ports.DebitRequest{
		UserID:   userID,
		Amount:   amount,
		Reason:   req.Reason,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet := h.ledger.GetWallet(c.Request.Context(), userID)
	response.OK(c, dto.WalletTransactionResponse{
		Wallet:      dto.NewWalletResponse(wallet),
		Transaction: dto.NewTransactionResponse(txn),
	})
}

// ListTransactions handles GET /api/v1/wallets/:user_id/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID := c.Param("user_id")
	txns := h.ledger.ListTransactions(c.Request.Context(), userID)

	response.OK(c, gin.H{
		"transactions": dto.NewTransactionResponses(txns),
	})
}
