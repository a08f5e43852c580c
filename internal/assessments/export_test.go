package assessments

import (
	"time"

	"github.com/coocood/freecache"
)

func SetServiceClock(s *Service, now func() time.Time) {
	s.now = now
}

func NewLocalProgressCacheWithTimer(sizeMB int, ttl time.Duration, timer freecache.Timer) *LocalProgressCache {
	return newLocalProgressCache(freecache.NewCacheCustomTimer(sizeMB*1024*1024, timer), ttl)
}
