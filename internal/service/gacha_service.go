package service

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/ports"
	"github.com/decarvalhoe/umbra-payment-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// GachaServiceImpl implements ports.DrawEngine. It owns the pool
// configuration and the process-wide random source; spending goes through
// the ledger's debit contract.
type GachaServiceImpl struct {
	pools      []domain.Pool
	poolsByIdx map[string]int
	maxDraws   int
	ledger     ports.LedgerService

	// rngMu guards the shared source used by unseeded draws. It is never
	// held while a wallet lock is held: the debit completes and releases
	// its lock before sampling starts.
	rngMu sync.Mutex
	rng   *rand.Rand

	log zerolog.Logger
}

// NewGachaService validates the pool configuration and creates the draw
// engine. A nil seed self-seeds the shared random source from system
// entropy.
func NewGachaService(pools []domain.Pool, maxDraws int, seed *int64, ledger ports.LedgerService, log zerolog.Logger) (*GachaServiceImpl, error) {
	if maxDraws < 1 {
		return nil, fmt.Errorf("max draws must be at least 1, got %d", maxDraws)
	}
	if len(pools) == 0 {
		return nil, fmt.Errorf("at least one pool must be configured")
	}

	byIdx := make(map[string]int, len(pools))
	for i, pool := range pools {
		if err := pool.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byIdx[pool.Name]; exists {
			return nil, fmt.Errorf("duplicate pool %q", pool.Name)
		}
		byIdx[pool.Name] = i
	}

	s := rand.NewSource(resolveSeed(seed))
	return &GachaServiceImpl{
		pools:      pools,
		poolsByIdx: byIdx,
		maxDraws:   maxDraws,
		ledger:     ledger,
		rng:        rand.New(s),
		log:        log,
	}, nil
}

// ListPools implements ports.DrawEngine.
func (s *GachaServiceImpl) ListPools(_ context.Context) []domain.Pool {
	out := make([]domain.Pool, len(s.pools))
	copy(out, s.pools)
	return out
}

// Draw implements ports.DrawEngine. Validation and payment happen before
// any sampling, so a failed debit has zero effect on outcomes.
func (s *GachaServiceImpl) Draw(ctx context.Context, req ports.DrawRequest) (*ports.DrawResult, error) {
	idx, ok := s.poolsByIdx[req.PoolName]
	if !ok {
		return nil, apperror.ErrPoolNotFound(req.PoolName)
	}
	pool := s.pools[idx]

	if req.Count < 1 || req.Count > s.maxDraws {
		return nil, apperror.ErrInvalidDrawCount(s.maxDraws)
	}

	totalCost := pool.Cost.MulInt(req.Count)
	txn, err := s.ledger.Debit(ctx, ports.DebitRequest{
		UserID: req.UserID,
		Amount: totalCost,
		Reason: "gacha:" + pool.Name,
	})
	if err != nil {
		return nil, err
	}

	items := s.sample(pool, req.Count, req.Seed)

	s.log.Info().
		Str("user_id", req.UserID).
		Str("pool", pool.Name).
		Int("draws", req.Count).
		Str("cost", totalCost.String()).
		Str("balance", txn.BalanceAfter.String()).
		Msg("gacha draw completed")

	return &ports.DrawResult{
		PoolName:         pool.Name,
		Count:            req.Count,
		Items:            items,
		RemainingBalance: txn.BalanceAfter,
	}, nil
}

// sample performs count sequential weighted selections with replacement.
// A per-call seed builds a private source; unseeded draws share the
// process-wide source under its lock. Sampling order is stable, so a given
// seed always yields the same item sequence.
func (s *GachaServiceImpl) sample(pool domain.Pool, count int, seed *int64) []domain.DrawnItem {
	total := pool.TotalWeight()
	items := make([]domain.DrawnItem, count)

	if seed != nil {
		rng := rand.New(rand.NewSource(*seed))
		for i := range items {
			picked := pool.PickItem(rng.Int63n(total))
			items[i] = domain.DrawnItem{Name: picked.Name, Rarity: picked.Rarity}
		}
		return items
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	for i := range items {
		picked := pool.PickItem(s.rng.Int63n(total))
		items[i] = domain.DrawnItem{Name: picked.Name, Rarity: picked.Rarity}
	}
	return items
}

// resolveSeed returns the configured seed or one read from system entropy.
func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back loudly
		// anyway rather than seeding with a constant.
		panic("gacha: cannot self-seed random source: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
