package slab

import "unsafe"

// CacheFlags configures a Cache at construction time.
type CacheFlags uint32

// DescrOnSlab asks for slab descriptors to live on the slab's first page
// instead of being allocated from the process-wide bootstrap cache.
const DescrOnSlab CacheFlags = 1 << 0

// Ctor is invoked on a freshly returned slot before Alloc hands it to the
// caller. It is never invoked for a failed allocation.
type Ctor func(obj unsafe.Pointer)

// ReclaimPolicy is invoked by Cache.Free after every free, and is given
// the chance to destroy slabs currently on the free list. Allocation never
// invokes it.
type ReclaimPolicy func(c *Cache)

// Cache is a pool of slabs bound to one object size. It maintains three
// slab lists partitioned by fullness (free/partial/full) and exposes
// Alloc/Free against them. A Cache is single-threaded: see SafeCache for a
// synchronized wrapper.
type Cache struct {
	objSize       uintptr
	actualObjSize uintptr
	flags         CacheFlags

	pagesPerSlab  int
	pageSize      int
	slabSize      int
	objsPerSlab   int
	wastedPerSlab uintptr

	freeObjsCount int
	usedObjsCount int

	slabCount         int
	freeSlabsCount    int
	partialSlabsCount int
	fullSlabsCount    int

	freeSlabs, partialSlabs, fullSlabs *Slab

	ctor    Ctor
	reclaim ReclaimPolicy

	// descrCache is the bootstrap cache to allocate descriptors from when
	// flags&DescrOnSlab == 0. It is nil in on-slab mode.
	descrCache *Cache
}

// NewCache is the convenience initializer: one page per slab, on-slab
// descriptors, the default reclamation policy, and an optional
// constructor.
func NewCache(objSize uintptr, ctor Ctor) (*Cache, error) {
	return NewCacheEx(objSize, 1, DescrOnSlab, ctor, nil)
}

// NewCacheEx is the full initializer. A nil reclaim policy installs
// DefaultReclaimPolicy(defaultMaxFreeSlabs). Passing pagesPerSlab == 0, or
// an objSize that leaves no room for a single slot, fails.
func NewCacheEx(objSize uintptr, pagesPerSlab int, flags CacheFlags, ctor Ctor, reclaim ReclaimPolicy) (*Cache, error) {
	if pagesPerSlab == 0 {
		return nil, ErrInvalidPagesPerSlab
	}

	onSlab := flags&DescrOnSlab != 0
	var descrCache *Cache
	if !onSlab {
		descrCache = bootstrapCache
		if descrCache == nil {
			return nil, ErrBootstrapNotInitialized
		}
	}

	c := &Cache{
		objSize:      objSize,
		flags:        flags,
		pagesPerSlab: pagesPerSlab,
		pageSize:     osPageSize(),
		ctor:         ctor,
		descrCache:   descrCache,
	}

	c.actualObjSize = objSize
	if c.actualObjSize < pointerSize {
		c.actualObjSize = pointerSize
	}

	c.slabSize = c.pagesPerSlab * c.pageSize
	c.objsPerSlab = objsPerSlabFor(c.pagesPerSlab, c.pageSize, c.actualObjSize, onSlab)
	if c.objsPerSlab < 1 {
		return nil, ErrObjectTooLarge
	}

	wastedPerPage := uintptr(c.pageSize) % c.actualObjSize
	c.wastedPerSlab = wastedPerPage * uintptr(c.pagesPerSlab)

	if reclaim == nil {
		reclaim = DefaultReclaimPolicy(defaultMaxFreeSlabs)
	}
	c.reclaim = reclaim

	return c, nil
}

// Alloc allocates one object, returning nil if the OS cannot supply pages
// for a new slab or (in off-slab mode) the bootstrap cache cannot supply a
// descriptor. A slot's contents are zero only the first time it is
// returned; a freed-then-reallocated slot retains whatever it held last.
func (c *Cache) Alloc() unsafe.Pointer {
	var obj unsafe.Pointer

	if c.partialSlabs != nil {
		slab := c.partialSlabs
		obj = slab.allocSlot()
		c.freeObjsCount--
		c.usedObjsCount++

		if slab.isFull() {
			listDeleteHead(&c.partialSlabs, slab)
			listPushHead(&c.fullSlabs, slab)
			c.partialSlabsCount--
			c.fullSlabsCount++
		}
	} else {
		if c.freeSlabs == nil {
			descrCache := c.descrCacheForNewSlab()
			slab, err := createSlab(c.pagesPerSlab, c.pageSize, c.actualObjSize, descrCache)
			if err != nil {
				return nil
			}
			listPushHead(&c.freeSlabs, slab)
			c.freeSlabsCount++
			c.slabCount++
			c.freeObjsCount += c.objsPerSlab
		}

		slab := c.freeSlabs
		obj = slab.allocSlot()
		c.freeObjsCount--
		c.usedObjsCount++

		listDeleteHead(&c.freeSlabs, slab)
		c.freeSlabsCount--
		if slab.isFull() {
			// Only reachable when objsPerSlab == 1.
			listPushHead(&c.fullSlabs, slab)
			c.fullSlabsCount++
		} else {
			listPushHead(&c.partialSlabs, slab)
			c.partialSlabsCount++
		}
	}

	if obj != nil && c.ctor != nil {
		c.ctor(obj)
	}
	return obj
}

func (c *Cache) descrCacheForNewSlab() *Cache {
	if c.flags&DescrOnSlab != 0 {
		return nil
	}
	return c.descrCache
}

// Free releases obj, previously returned by Alloc on this same cache,
// back to its slab. A nil obj is a no-op. Calling Free on a nil Cache is a
// programming error and panics. Passing an object from a different cache,
// or a non-slot pointer, is undefined.
func (c *Cache) Free(obj unsafe.Pointer) {
	if c == nil {
		panic("slab: Free called on a nil Cache")
	}
	if obj == nil {
		return
	}

	slab := ownerOf(obj, c.pageSize)
	wasFull := slab.isFull()
	slab.freeSlot(obj)
	isNowFree := slab.isEmpty(c.objsPerSlab)

	c.freeObjsCount++
	c.usedObjsCount--

	switch {
	case !wasFull && isNowFree:
		listDeleteElem(&c.partialSlabs, slab)
		listPushHead(&c.freeSlabs, slab)
		c.partialSlabsCount--
		c.freeSlabsCount++
	case wasFull && !isNowFree:
		listDeleteElem(&c.fullSlabs, slab)
		listPushHead(&c.partialSlabs, slab)
		c.fullSlabsCount--
		c.partialSlabsCount++
	case wasFull && isNowFree:
		listDeleteElem(&c.fullSlabs, slab)
		listPushHead(&c.freeSlabs, slab)
		c.fullSlabsCount--
		c.freeSlabsCount++
	}

	if c.reclaim != nil {
		c.reclaim(c)
	}
}

// Destroy releases every slab owned by the cache back to the OS. The
// cache must not be used afterward.
func (c *Cache) Destroy() {
	for _, head := range [...]**Slab{&c.freeSlabs, &c.partialSlabs, &c.fullSlabs} {
		for *head != nil {
			slab := listPopHead(head)
			c.releaseSlab(slab)
		}
	}
}

func (c *Cache) releaseSlab(slab *Slab) {
	onSlab := c.flags&DescrOnSlab != 0
	_ = destroySlab(slab, c.pagesPerSlab, c.pageSize)
	if !onSlab && c.descrCache != nil {
		c.descrCache.Free(unsafe.Pointer(slab))
	}
}
