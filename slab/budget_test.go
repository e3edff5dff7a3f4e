package slab

import (
	"testing"

	"github.com/pbnjay/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetAdvisor_FlagsGrowthPastRatio(t *testing.T) {
	if memory.TotalMemory() == 0 {
		t.Skip("total system memory could not be determined in this environment")
	}

	c, err := NewCache(64, nil)
	require.NoError(t, err)
	t.Cleanup(c.Destroy)

	obj := c.Alloc()
	require.NotNil(t, obj)

	_, baseline := NewBudgetAdvisor(0).CheckGrowth(c)
	require.Greater(t, baseline, 0.0)

	advisor := NewBudgetAdvisor(baseline / 2)
	warn, ratio := advisor.CheckGrowth(c)
	assert.True(t, warn)
	assert.Equal(t, baseline, ratio)
}

func TestBudgetAdvisor_NeverWarnsAtRatioOne(t *testing.T) {
	if memory.TotalMemory() == 0 {
		t.Skip("total system memory could not be determined in this environment")
	}

	c, err := NewCache(64, nil)
	require.NoError(t, err)
	t.Cleanup(c.Destroy)

	obj := c.Alloc()
	require.NotNil(t, obj)

	advisor := NewBudgetAdvisor(1.0)
	warn, _ := advisor.CheckGrowth(c)
	assert.False(t, warn)
}

func TestBudgetAdvisor_EmptyCacheNeverWarns(t *testing.T) {
	c, err := NewCache(64, nil)
	require.NoError(t, err)
	t.Cleanup(c.Destroy)

	advisor := NewBudgetAdvisor(0.5)
	warn, ratio := advisor.CheckGrowth(c)
	assert.False(t, warn)
	assert.Equal(t, 0.0, ratio)
}
