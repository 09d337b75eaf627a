package state

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CacheStorage keeps sessions in process memory. Sessions idle longer than
// the TTL are evicted, so an abandoned flow does not linger forever.
type CacheStorage struct {
	cache *gocache.Cache
}

func NewCacheStorage(ttl time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: gocache.New(ttl, ttl),
	}
}

func (s *CacheStorage) Get(userID int64) (*Session, bool) {
	v, ok := s.cache.Get(cacheKey(userID))
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (s *CacheStorage) Set(userID int64, session *Session) {
	s.cache.SetDefault(cacheKey(userID), session)
}

func (s *CacheStorage) Delete(userID int64) {
	s.cache.Delete(cacheKey(userID))
}

func cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
