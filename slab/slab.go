package slab

import "unsafe"

// Slab is a contiguous range of OS pages carved into actualObjSize slots
// for a single Cache. Its descriptor either lives on the slab's first page
// (on-slab mode, descrCache == nil at construction) or was allocated from
// the process-wide bootstrap cache (off-slab mode). Either way every page
// of the slab begins with a pointer-sized back-pointer word addressing
// this descriptor, recovered in O(1) by ownerOf.
type Slab struct {
	pages         unsafe.Pointer // first byte of the slab's page range
	freeObjsCount int
	firstFreeObj  unsafe.Pointer
	objs          unsafe.Pointer // first slot; stable for the slab's lifetime

	prev, next *Slab
}

// slabDescrSize is how much room an on-slab descriptor takes on page 0, in
// addition to that page's back-pointer word. Off-slab mode reserves no such
// room: its callers use a descriptor size of zero instead.
const slabDescrSize = unsafe.Sizeof(Slab{})

func (s *Slab) isFull() bool {
	return s.freeObjsCount == 0
}

func (s *Slab) isEmpty(objsPerSlab int) bool {
	return s.freeObjsCount == objsPerSlab
}

// allocSlot pops the head of the slab's free chain. The caller must have
// already checked freeObjsCount > 0.
func (s *Slab) allocSlot() unsafe.Pointer {
	obj := s.firstFreeObj
	slot := slotAsFree(obj)
	s.firstFreeObj = slot.next
	slot.next = nil
	s.freeObjsCount--
	return obj
}

// freeSlot pushes obj back onto the head of the slab's free chain. The
// caller does not validate that obj was previously allocated from this
// slab or that it is not already free; that contract is the client's.
func (s *Slab) freeSlot(obj unsafe.Pointer) {
	slot := slotAsFree(obj)
	slot.next = s.firstFreeObj
	s.firstFreeObj = obj
	s.freeObjsCount++
}

// objsPerSlabFor computes how many actualObjSize slots fit in a slab of
// pagesPerSlab pages, accounting for the per-page back-pointer word and,
// in on-slab mode, the descriptor occupying part of page 0.
func objsPerSlabFor(pagesPerSlab, pageSize int, actualObjSize uintptr, onSlab bool) int {
	descrSize := uintptr(0)
	if onSlab {
		descrSize = slabDescrSize
	}
	freeFirstPage := (uintptr(pageSize) - pointerSize - descrSize) / actualObjSize
	freeOtherPage := (uintptr(pageSize) - pointerSize) / actualObjSize
	return int(freeFirstPage + uintptr(pagesPerSlab-1)*freeOtherPage)
}

// createSlab acquires pagesPerSlab pages from the OS and lays out a new
// slab: a back-pointer word at the base of every page, a descriptor (on
// page 0 when descrCache is nil, otherwise allocated from descrCache), and
// a free chain threading every slot across the slab in address order —
// the last slot of page i pointing to the first slot of page i+1, the
// last slot of the last page pointing to nil.
func createSlab(pagesPerSlab, pageSize int, actualObjSize uintptr, descrCache *Cache) (*Slab, error) {
	pages, err := acquirePages(pagesPerSlab, pageSize)
	if err != nil {
		return nil, err
	}

	onSlab := descrCache == nil

	var descr *Slab
	if onSlab {
		descr = (*Slab)(unsafe.Pointer(uintptr(pages) + pointerSize))
	} else {
		obj := descrCache.Alloc()
		if obj == nil {
			_ = releasePages(pages, pagesPerSlab, pageSize)
			return nil, ErrDescriptorExhausted
		}
		descr = (*Slab)(obj)
	}

	descr.pages = pages
	descr.prev, descr.next = nil, nil

	for i := 0; i < pagesPerSlab; i++ {
		pageBase := unsafe.Pointer(uintptr(pages) + uintptr(i)*uintptr(pageSize))
		writeBackPointer(pageBase, descr)
	}

	objsPerSlab := objsPerSlabFor(pagesPerSlab, pageSize, actualObjSize, onSlab)
	if objsPerSlab < 1 {
		_ = releasePages(pages, pagesPerSlab, pageSize)
		return nil, ErrObjectTooLarge
	}

	descrSize := uintptr(0)
	if onSlab {
		descrSize = slabDescrSize
	}
	firstSlot := unsafe.Pointer(uintptr(pages) + pointerSize + descrSize)
	descr.objs = firstSlot
	descr.firstFreeObj = firstSlot
	descr.freeObjsCount = objsPerSlab

	var prevSlot *freeSlot
	for i := 0; i < pagesPerSlab; i++ {
		pageBase := uintptr(pages) + uintptr(i)*uintptr(pageSize)
		pageEnd := pageBase + uintptr(pageSize)

		slotAddr := pageBase + pointerSize
		if i == 0 {
			slotAddr += descrSize
		}

		for slotAddr+actualObjSize <= pageEnd {
			slot := slotAsFree(unsafe.Pointer(slotAddr))
			if prevSlot != nil {
				prevSlot.next = unsafe.Pointer(slotAddr)
			}
			prevSlot = slot
			slotAddr += actualObjSize
		}
	}
	if prevSlot != nil {
		prevSlot.next = nil
	}

	return descr, nil
}

// destroySlab releases a slab's page range back to the OS. When the
// descriptor was off-slab, the caller is responsible for separately
// returning it to the bootstrap cache.
func destroySlab(s *Slab, pagesPerSlab, pageSize int) error {
	return releasePages(s.pages, pagesPerSlab, pageSize)
}
