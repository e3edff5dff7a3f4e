package slab

import (
	"fmt"
	"io"
)

// CacheStats is a point-in-time snapshot of a cache's configuration and
// bookkeeping counters.
type CacheStats struct {
	ObjSize       uintptr
	ActualObjSize uintptr
	PagesPerSlab  int
	SlabSize      int
	ObjsPerSlab   int
	WastedPerSlab uintptr

	FreeObjsCount int
	UsedObjsCount int

	SlabCount         int
	FreeSlabsCount    int
	PartialSlabsCount int
	FullSlabsCount    int
}

// Stats returns a snapshot of the cache's current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		ObjSize:       c.objSize,
		ActualObjSize: c.actualObjSize,
		PagesPerSlab:  c.pagesPerSlab,
		SlabSize:      c.slabSize,
		ObjsPerSlab:   c.objsPerSlab,
		WastedPerSlab: c.wastedPerSlab,

		FreeObjsCount: c.freeObjsCount,
		UsedObjsCount: c.usedObjsCount,

		SlabCount:         c.slabCount,
		FreeSlabsCount:    c.freeSlabsCount,
		PartialSlabsCount: c.partialSlabsCount,
		FullSlabsCount:    c.fullSlabsCount,
	}
}

// Dump writes a terse textual reflection of the cache's current counters
// to w, in the key: value-per-line style of the original C implementation's
// display_cache_info. It imposes no format contract; callers should not
// parse it.
func (c *Cache) Dump(w io.Writer) {
	s := c.Stats()
	fmt.Fprintf(w, "obj_size: %d\n", s.ObjSize)
	fmt.Fprintf(w, "actual_obj_size: %d\n", s.ActualObjSize)
	fmt.Fprintf(w, "pages_per_slab: %d\n", s.PagesPerSlab)
	fmt.Fprintf(w, "slab_size: %d\n", s.SlabSize)
	fmt.Fprintf(w, "objs_per_slab: %d\n", s.ObjsPerSlab)
	fmt.Fprintf(w, "wasted_memory_per_slab: %d\n", s.WastedPerSlab)
	fmt.Fprintf(w, "free_objs_count: %d\n", s.FreeObjsCount)
	fmt.Fprintf(w, "used_objs_count: %d\n", s.UsedObjsCount)
	fmt.Fprintf(w, "slab_count: %d\n", s.SlabCount)
	fmt.Fprintf(w, "free_slabs_count: %d\n", s.FreeSlabsCount)
	fmt.Fprintf(w, "partial_slabs_count: %d\n", s.PartialSlabsCount)
	fmt.Fprintf(w, "full_slabs_count: %d\n", s.FullSlabsCount)
}
