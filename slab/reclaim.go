package slab

// defaultMaxFreeSlabs is the cap DefaultReclaimPolicy enforces when a
// cache is built with NewCache, or with NewCacheEx and a nil policy.
const defaultMaxFreeSlabs = 5

// DefaultReclaimPolicy returns a ReclaimPolicy that pops slabs from the
// head of the free list and destroys them until at most cap slabs remain
// free. It is applied only after a free; allocation never reclaims.
func DefaultReclaimPolicy(cap int) ReclaimPolicy {
	return func(c *Cache) {
		for c.freeSlabsCount > cap {
			slab := listPopHead(&c.freeSlabs)
			c.releaseSlab(slab)
			c.freeSlabsCount--
			c.slabCount--
		}
	}
}
