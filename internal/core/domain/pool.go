package domain

import (
	"errors"
	"fmt"
)

// Rarity classifies a gacha item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// PoolItem is one entry in a gacha pool. Weight is an unnormalized
// probability mass: P(item) = weight / sum(weights).
type PoolItem struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
	Weight int64  `json:"weight"`
}

// Pool is a named gacha configuration: a per-draw cost and an ordered,
// weighted item list. Pools are read-only at runtime.
type Pool struct {
	Name  string     `json:"name"`
	Cost  Money      `json:"cost"`
	Items []PoolItem `json:"items"`
}

// DrawnItem is the outcome of a single weighted draw.
type DrawnItem struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
}

// Validate checks the pool configuration is usable for drawing.
func (p Pool) Validate() error {
	if p.Name == "" {
		return errors.New("pool name must not be empty")
	}
	if !p.Cost.IsPositive() {
		return fmt.Errorf("pool %q: cost must be positive", p.Name)
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("pool %q: item list must not be empty", p.Name)
	}
	for _, item := range p.Items {
		if item.Name == "" {
			return fmt.Errorf("pool %q: item name must not be empty", p.Name)
		}
		if item.Weight <= 0 {
			return fmt.Errorf("pool %q: item %q: weight must be positive", p.Name, item.Name)
		}
	}
	return nil
}

// TotalWeight returns the sum of all item weights.
func (p Pool) TotalWeight() int64 {
	var total int64
	for _, item := range p.Items {
		total += item.Weight
	}
	return total
}

// PickItem locates the first item whose cumulative weight exceeds roll.
// roll must be in [0, TotalWeight()).
func (p Pool) PickItem(roll int64) PoolItem {
	var cumulative int64
	for _, item := range p.Items {
		cumulative += item.Weight
		if roll < cumulative {
			return item
		}
	}
	// Unreachable for a validated pool and an in-range roll.
	return p.Items[len(p.Items)-1]
}

// DefaultPools returns the built-in gacha pools.
func DefaultPools() []Pool {
	return []Pool{
		{
			Name: "standard",
			Cost: MustMoney("10.00"),
			Items: []PoolItem{
				{Name: "Bague de Cuivre", Rarity: RarityCommon, Weight: 70},
				{Name: "Amulette d'Argent", Rarity: RarityRare, Weight: 25},
				{Name: "Lame d'Ombre", Rarity: RarityLegendary, Weight: 5},
			},
		},
		{
			Name: "premium",
			Cost: MustMoney("30.00"),
			Items: []PoolItem{
				{Name: "Cristal Azur", Rarity: RarityRare, Weight: 60},
				{Name: "Relique Ancienne", Rarity: RarityEpic, Weight: 30},
				{Name: "Couronne du Néant", Rarity: RarityMythic, Weight: 10},
			},
		},
	}
}
