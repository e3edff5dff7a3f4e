package slab

import "unsafe"

// bootstrapCache is the single process-wide cache of slab descriptors.
// Its own slabs carry their descriptors on-slab, breaking the recursion
// that off-slab descriptor allocation would otherwise create: a cache
// needing an off-slab descriptor for its first slab calls Alloc on this
// cache, which never itself needs an off-slab descriptor.
var bootstrapCache *Cache

// BootstrapInit initializes the process-wide descriptor cache. It must be
// called before any off-slab-descriptor cache is created. Calling it twice
// leaks the previous bootstrap cache's slabs; it is not required to be
// idempotent.
func BootstrapInit() error {
	c, err := NewCacheEx(unsafe.Sizeof(Slab{}), 1, DescrOnSlab, nil, nil)
	if err != nil {
		return err
	}
	bootstrapCache = c
	return nil
}

// BootstrapDestroy tears down the descriptor cache. The caller must ensure
// every cache that used off-slab descriptors has already been destroyed;
// this is not checked.
func BootstrapDestroy() {
	if bootstrapCache == nil {
		return
	}
	bootstrapCache.Destroy()
	bootstrapCache = nil
}
