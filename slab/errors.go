package slab

import "errors"

// Error kinds surfaced at the public boundary. None of them carry
// additional context beyond their message: NewCache/NewCacheEx report
// failure as a nil Cache plus one of these sentinels, Cache.Alloc reports
// failure as a nil pointer alone, and nothing inside the package retries.
var (
	// ErrPageAcquireFailed is wrapped around a failed anonymous mmap.
	ErrPageAcquireFailed = errors.New("slab: failed to acquire pages from the OS")

	// ErrDescriptorExhausted means the bootstrap cache could not satisfy
	// an off-slab descriptor allocation for a new slab.
	ErrDescriptorExhausted = errors.New("slab: bootstrap cache could not allocate a slab descriptor")

	// ErrInvalidPagesPerSlab means pagesPerSlab was zero.
	ErrInvalidPagesPerSlab = errors.New("slab: pagesPerSlab must be at least 1")

	// ErrObjectTooLarge means obj_size leaves no room for a single slot
	// once page metadata and (for on-slab mode) the descriptor are
	// accounted for.
	ErrObjectTooLarge = errors.New("slab: object size leaves no room for a single slot in a slab")

	// ErrBootstrapNotInitialized means an off-slab-descriptor cache was
	// requested before BootstrapInit ran.
	ErrBootstrapNotInitialized = errors.New("slab: off-slab descriptor cache requires BootstrapInit first")
)
