package handler

import (
	"github.com/decarvalhoe/umbra-payment-service/internal/adapter/http/dto"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/ports"
	"github.com/decarvalhoe/umbra-payment-service/pkg/apperror"
	"github.com/decarvalhoe/umbra-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// GachaHandler handles gacha-related endpoints.
type GachaHandler struct {
	engine      ports.DrawEngine
	defaultPool string
}

// NewGachaHandler creates a new GachaHandler. defaultPool is used when a
// draw request omits the pool name.
func NewGachaHandler(engine ports.DrawEngine, defaultPool string) *GachaHandler {
	return &GachaHandler{engine: engine, defaultPool: defaultPool}
}

// ListPools handles GET /api/v1/gacha/pools.
func (h *GachaHandler) ListPools(c *gin.Context) {
	pools := h.engine.ListPools(c.Request.Context())

	out := make([]dto.PoolResponse, len(pools))
	for i, pool := range pools {
		out[i] = dto.NewPoolResponse(pool)
	}
	response.OK(c, dto.PoolListResponse{Pools: out})
}

// Draw handles POST /api/v1/gacha/draw. Boundary defaults: pool falls back
// to the configured default, draws to 1.
func (h *GachaHandler) Draw(c *gin.Context) {
	var req dto.DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	poolName := req.Pool
	if poolName == "" {
		poolName = h.defaultPool
	}
	draws := 1
	if req.Draws != nil {
		draws = *req.Draws
	}

	result, err := h.engine.Draw(c.Request.Context(), ports.DrawRequest{
		UserID:   req.UserID,
		PoolName: poolName,
		Count:    draws,
		Seed:     req.Seed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewDrawResponse(result))
}
