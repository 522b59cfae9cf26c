package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a small wrapper around go-cache used to memoize hot transport-layer
// lookups (the authenticated-user resolution in particular). Domain reads are
// never cached; every service read goes back to the database.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyUserByID(id int) string {
	return "user_by_id:" + strconv.Itoa(id)
}
