package translate

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/core/model"
)

// Cached memoizes successful translations. Failures are not cached so a
// transient error does not stick for the whole run.
type Cached struct {
	next  classify.Translator
	cache *cache.Cache
}

// NewCached wraps next with a memo whose entries live for ttl.
func NewCached(next classify.Translator, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: cache.New(ttl, ttl*2),
	}
}

func (c *Cached) Translate(ctx context.Context, text, target string) (model.Translation, error) {
	key := target + "\x00" + text
	if cached, found := c.cache.Get(key); found {
		if t, ok := cached.(model.Translation); ok {
			return t, nil
		}
	}
	t, err := c.next.Translate(ctx, text, target)
	if err != nil {
		return t, err
	}
	c.cache.Set(key, t, cache.DefaultExpiration)
	return t, nil
}

// Len returns the number of memoized entries.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}
