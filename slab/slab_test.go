package slab

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescrCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCacheEx(unsafe.Sizeof(Slab{}), 1, DescrOnSlab, nil, nil)
	require.NoError(t, err)
	t.Cleanup(c.Destroy)
	return c
}

func TestCreateSlab_OnSlab_FreeChainCoversEveryObject(t *testing.T) {
	pageSize := osPageSize()
	actualObjSize := pointerSize // smallest possible object

	slab, err := createSlab(1, pageSize, actualObjSize, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = destroySlab(slab, 1, pageSize) })

	wantObjs := objsPerSlabFor(1, pageSize, actualObjSize, true)
	assert.Greater(t, wantObjs, 1)
	assert.Equal(t, wantObjs, slab.freeObjsCount)

	seen := map[uintptr]bool{}
	cur := slab.firstFreeObj
	count := 0
	for cur != nil {
		addr := uintptr(cur)
		require.False(t, seen[addr], "free chain must not cycle")
		seen[addr] = true
		count++
		cur = slotAsFree(cur).next
	}
	assert.Equal(t, wantObjs, count)
}

func TestCreateSlab_OwnerLookupResolvesEverySlot(t *testing.T) {
	pageSize := osPageSize()
	actualObjSize := pointerSize

	slab, err := createSlab(1, pageSize, actualObjSize, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = destroySlab(slab, 1, pageSize) })

	cur := slab.firstFreeObj
	for cur != nil {
		assert.Same(t, slab, ownerOf(cur, pageSize))
		cur = slotAsFree(cur).next
	}
}

func TestCreateSlab_MultiPageChainsAcrossPages(t *testing.T) {
	pageSize := osPageSize()
	actualObjSize := uintptr(64)

	slab, err := createSlab(3, pageSize, actualObjSize, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = destroySlab(slab, 3, pageSize) })

	wantObjs := objsPerSlabFor(3, pageSize, actualObjSize, true)
	assert.Equal(t, wantObjs, slab.freeObjsCount)

	// Every slot in the chain must resolve back to this slab, regardless
	// of which of the 3 pages it sits on.
	cur := slab.firstFreeObj
	count := 0
	for cur != nil {
		assert.Same(t, slab, ownerOf(cur, pageSize))
		count++
		cur = slotAsFree(cur).next
	}
	assert.Equal(t, wantObjs, count)
}

func TestCreateSlab_OffSlabDescriptor(t *testing.T) {
	pageSize := osPageSize()
	descrCache := newDescrCache(t)

	slab, err := createSlab(1, pageSize, 32, descrCache)
	require.NoError(t, err)
	t.Cleanup(func() { _ = destroySlab(slab, 1, pageSize) })

	// The descriptor is not on the data page: the first slot starts right
	// after the back-pointer word, with no descriptor-sized gap.
	wantFirstSlot := unsafe.Pointer(uintptr(slab.pages) + pointerSize)
	assert.Equal(t, wantFirstSlot, slab.firstFreeObj)
	assert.Same(t, slab, ownerOf(slab.firstFreeObj, pageSize))
}

func TestCreateSlab_ObjectTooLargeFails(t *testing.T) {
	pageSize := osPageSize()
	_, err := createSlab(1, pageSize, uintptr(pageSize)*2, nil)
	assert.ErrorIs(t, err, ErrObjectTooLarge)
}

func TestSlab_AllocAndFreeSlot(t *testing.T) {
	pageSize := osPageSize()
	slab, err := createSlab(1, pageSize, pointerSize, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = destroySlab(slab, 1, pageSize) })

	before := slab.freeObjsCount
	obj := slab.allocSlot()
	require.NotNil(t, obj)
	assert.Equal(t, before-1, slab.freeObjsCount)

	slab.freeSlot(obj)
	assert.Equal(t, before, slab.freeObjsCount)
	assert.Equal(t, obj, slab.firstFreeObj)
}
