package slab

import "github.com/pbnjay/memory"

// BudgetAdvisor answers whether a cache's resident slab footprint is
// becoming a meaningful fraction of total system memory. It never blocks
// or rejects an allocation — Cache.Alloc never consults it — it only
// informs an operator polling Stats, or a custom ReclaimPolicy that wants
// to reclaim more aggressively under memory pressure.
type BudgetAdvisor struct {
	warnRatio float64
}

// NewBudgetAdvisor builds an advisor that flags growth once a cache's
// slab footprint reaches warnRatio of total system memory.
func NewBudgetAdvisor(warnRatio float64) *BudgetAdvisor {
	return &BudgetAdvisor{warnRatio: warnRatio}
}

// CheckGrowth reports whether c's total slab footprint (slabCount *
// slabSize) has reached the advisor's warn ratio of total system memory,
// along with the ratio observed. If total system memory cannot be
// determined, CheckGrowth never warns.
func (b *BudgetAdvisor) CheckGrowth(c *Cache) (warn bool, ratio float64) {
	total := memory.TotalMemory()
	if total == 0 {
		return false, 0
	}
	footprint := uint64(c.slabCount) * uint64(c.slabSize)
	ratio = float64(footprint) / float64(total)
	return ratio >= b.warnRatio, ratio
}
