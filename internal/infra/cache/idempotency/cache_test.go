package idempotency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := New(time.Minute)

	_, found := c.Get("key-1")
	assert.False(t, found)

	c.Put("key-1", 42)
	id, found := c.Get("key-1")
	assert.True(t, found)
	assert.Equal(t, int64(42), id)

	c.Forget("key-1")
	_, found = c.Get("key-1")
	assert.False(t, found)
}

func TestCacheExpires(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Put("key-1", 1)

	assert.Eventually(t, func() bool {
		_, found := c.Get("key-1")
		return !found
	}, time.Second, 5*time.Millisecond)
}
