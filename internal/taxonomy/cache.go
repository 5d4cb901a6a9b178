package taxonomy

import (
	"sync"

	"github.com/example/sendgate/internal/models"
)

// Cache is a read-through lookup over the send-type taxonomy. The index is
// built lazily on first use. The cache is owned by the service instance and
// injected wherever taxonomy lookups are needed; there is no package-level
// mutable state, so tests can construct isolated instances.
type Cache struct {
	once  sync.Once
	byKey map[string]SendType
}

// NewCache returns an empty cache backed by the authoritative taxonomy table.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) load() {
	c.once.Do(func() {
		c.byKey = make(map[string]SendType, len(sendTypes))
		for _, st := range sendTypes {
			c.byKey[st.Key] = st
		}
	})
}

// Lookup returns the taxonomy entry for a send type key.
func (c *Cache) Lookup(key string) (SendType, bool) {
	c.load()
	st, ok := c.byKey[key]
	return st, ok
}

// Category returns the category of a send type key.
func (c *Cache) Category(key string) (models.Category, bool) {
	st, ok := c.Lookup(key)
	if !ok {
		return "", false
	}
	return st.Category, true
}

// FlyerRequired reports whether a send type requires a promo flyer.
func (c *Cache) FlyerRequired(key string) bool {
	st, ok := c.Lookup(key)
	return ok && st.FlyerRequired
}

// AllowedOnPage reports whether a send type is compatible with a page type.
// Unknown keys are not allowed anywhere. Retention types are forbidden on
// free pages as a category rule.
func (c *Cache) AllowedOnPage(key string, pageType models.PageType) bool {
	st, ok := c.Lookup(key)
	if !ok {
		return false
	}
	if st.Category == models.CategoryRetention && pageType == models.PageTypeFree {
		return false
	}
	if st.FreeOnly && pageType != models.PageTypeFree {
		return false
	}
	if st.PaidOnly && pageType != models.PageTypePaid {
		return false
	}
	return true
}
