package utils_test

import (
	"testing"
	"time"

	"cryptodash/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestCacheReturnsValueBeforeExpiration(t *testing.T) {
	cache := utils.NewCache[string]()
	cache.Set("ranking", time.Minute)

	value, ok := cache.Get()
	assert.True(t, ok)
	assert.Equal(t, "ranking", value)
}

func TestCacheExpires(t *testing.T) {
	cache := utils.NewCache[string]()
	cache.Set("ranking", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, ok := cache.Get()
	assert.False(t, ok)
}

func TestCacheEmptyByDefault(t *testing.T) {
	cache := utils.NewCache[int]()

	value, ok := cache.Get()
	assert.False(t, ok)
	assert.Zero(t, value)
}

func TestCacheClear(t *testing.T) {
	cache := utils.NewCache[string]()
	cache.Set("ranking", time.Minute)
	cache.Clear()

	_, ok := cache.Get()
	assert.False(t, ok)
}
