package handler

import (
	"github.com/decarvalhoe/umbra-payment-service/internal/adapter/http/middleware"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Ledger      ports.LedgerService
	Gacha       ports.DrawEngine
	DefaultPool string // pool used when a draw request omits the name
	Logger      zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.Ledger)
	wallets := v1.Group("/wallets")
	{
		wallets.GET("/:user_id", walletHandler.GetWallet)
		wallets.POST("/:user_id/topup", walletHandler.Topup)
		wallets.POST("/:user_id/spend", walletHandler.Spend)
		wallets.GET("/:user_id/transactions", walletHandler.ListTransactions)
	}

	gachaHandler := NewGachaHandler(deps.Gacha, deps.DefaultPool)
	gacha := v1.Group("/gacha")
	{
		gacha.GET("/pools", gachaHandler.ListPools)
		gacha.POST("/draw", gachaHandler.Draw)
	}

	return r
}
