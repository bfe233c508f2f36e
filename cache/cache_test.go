package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageCache_SetGet(t *testing.T) {
	c := NewPageCache(time.Minute)

	_, ok := c.Get("/")
	assert.False(t, ok)

	c.Set("/", []byte("rendered index"))
	got, ok := c.Get("/")
	assert.True(t, ok)
	assert.Equal(t, []byte("rendered index"), got)
}

func TestPageCache_SetReplaces(t *testing.T) {
	c := NewPageCache(time.Minute)
	c.Set("/", []byte("old"))
	c.Set("/", []byte("new"))

	got, ok := c.Get("/")
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestPageCache_Clear(t *testing.T) {
	c := NewPageCache(time.Minute)
	c.Set("/", []byte("rendered index"))
	c.Set("/other", []byte("rendered other"))

	c.Clear()

	_, ok := c.Get("/")
	assert.False(t, ok)
	_, ok = c.Get("/other")
	assert.False(t, ok)
}

func TestPageCache_Expiry(t *testing.T) {
	c := NewPageCache(20 * time.Millisecond)
	c.Set("/", []byte("rendered index"))

	_, ok := c.Get("/")
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = c.Get("/")
	assert.False(t, ok)
}

// The cache has no ties to the data layer: entries stay exactly as
// written until expiry or an explicit clear, no matter what happens to
// the underlying records.
func TestPageCache_NoImplicitInvalidation(t *testing.T) {
	c := NewPageCache(time.Minute)
	c.Set("/", []byte("contains a deleted post"))

	got, ok := c.Get("/")
	assert.True(t, ok)
	assert.Contains(t, string(got), "deleted post")

	c.Clear()
	_, ok = c.Get("/")
	assert.False(t, ok)
}
