package slab

import "unsafe"

// pointerSize is the size, in bytes, of both a machine pointer and the
// per-page back-pointer word. An object's actual storage is never smaller
// than this, since a free slot must be able to hold a pointer to the next
// free slot.
const pointerSize = unsafe.Sizeof(uintptr(0))

// freeSlot views an object slot while it sits on a slab's free chain: the
// first pointerSize bytes hold the address of the next free slot, or nil
// for the chain's tail. The moment a slot is handed to a client by Alloc
// its bytes become opaque user storage; nothing in this package reads them
// through freeSlot again until the slot comes back through Free.
type freeSlot struct {
	next unsafe.Pointer
}

func slotAsFree(obj unsafe.Pointer) *freeSlot {
	return (*freeSlot)(obj)
}

// maskPageBase rounds obj down to the start of the page containing it.
func maskPageBase(obj unsafe.Pointer, pageSize int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(obj) &^ uintptr(pageSize-1))
}

// ownerOf returns, in O(1), the Slab that owns obj: the page containing
// obj begins with a pointer-sized back-pointer word to its owning Slab's
// descriptor, written once when the slab was created.
func ownerOf(obj unsafe.Pointer, pageSize int) *Slab {
	base := maskPageBase(obj, pageSize)
	return *(**Slab)(base)
}

// writeBackPointer stamps the back-pointer word at the base of a page.
func writeBackPointer(pageBase unsafe.Pointer, descr *Slab) {
	*(**Slab)(pageBase) = descr
}
