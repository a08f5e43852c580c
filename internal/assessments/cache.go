package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=cache_mocks_test.go -package=assessments_test

const (
	progressKeyPrefix           = "bodycomp:progress:"
	progressGenerationKeyPrefix = "bodycomp:progress:gen:"
)

// LocalFallbackTTL caps how long a process-local report is served when
// redis cannot be reached. Writes from other processes do not reach the
// local cache, so this is also its worst-case lag.
const LocalFallbackTTL = 30 * time.Second

// ProgressCache keeps narrated progress per subject until a new, corrected or
// deleted assessment invalidates it.
//
// Entries are keyed by a per-subject generation. Invalidate bumps it, so a
// report computed from a listing taken before a write is stored under a
// generation nobody reads anymore.
type ProgressCache interface {
	Generation(ctx context.Context, subjectID uuid.UUID) (int64, error)
	Get(ctx context.Context, subjectID uuid.UUID, generation int64) (*ProgressReport, bool, error)
	Set(ctx context.Context, report ProgressReport, generation int64) error
	Invalidate(ctx context.Context, subjectID uuid.UUID) error
}

func progressKey(subjectID uuid.UUID, generation int64) string {
	return progressKeyPrefix + subjectID.String() + ":" + strconv.FormatInt(generation, 10)
}

func progressGenerationKey(subjectID uuid.UUID) string {
	return progressGenerationKeyPrefix + subjectID.String()
}

// NewSharedProgressCache returns a redis cache when redis answers a ping,
// and a local one with a TTL of at most LocalFallbackTTL otherwise.
func NewSharedProgressCache(ctx context.Context, rdb *redis.Client, ttl time.Duration, localSizeMB int) ProgressCache {
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnf("redis unreachable, progress cached locally for up to %s: %s", LocalFallbackTTL, err)
		return NewLocalProgressCache(localSizeMB, min(ttl, LocalFallbackTTL))
	}
	return NewRedisProgressCache(rdb, ttl)
}

type RedisProgressCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProgressCache(rdb *redis.Client, ttl time.Duration) *RedisProgressCache {
	return &RedisProgressCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *RedisProgressCache) Generation(ctx context.Context, subjectID uuid.UUID) (int64, error) {
	generation, err := c.rdb.Get(ctx, progressGenerationKey(subjectID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return generation, nil
}

func (c *RedisProgressCache) Get(ctx context.Context, subjectID uuid.UUID, generation int64) (*ProgressReport, bool, error) {
	reportBytes, err := c.rdb.Get(ctx, progressKey(subjectID, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var report ProgressReport
	if err := json.Unmarshal(reportBytes, &report); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached progress: %w", err)
	}
	return &report, true, nil
}

func (c *RedisProgressCache) Set(ctx context.Context, report ProgressReport, generation int64) error {
	reportBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := c.rdb.Set(ctx, progressKey(report.SubjectID, generation), reportBytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate moves the subject to a new generation. Reports stored under
// older generations are left to expire.
func (c *RedisProgressCache) Invalidate(ctx context.Context, subjectID uuid.UUID) error {
	if err := c.rdb.Incr(ctx, progressGenerationKey(subjectID)).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}

// LocalProgressCache is an in-process cache, used when there is no redis
// around (e.g. the stdio MCP server with redis down).
type LocalProgressCache struct {
	cache         *freecache.Cache
	expireSeconds int

	mu          sync.Mutex
	generations map[uuid.UUID]int64
}

func NewLocalProgressCache(sizeMB int, ttl time.Duration) *LocalProgressCache {
	return newLocalProgressCache(freecache.NewCache(sizeMB*1024*1024), ttl)
}

func newLocalProgressCache(cache *freecache.Cache, ttl time.Duration) *LocalProgressCache {
	// freecache treats 0 as "never expires"
	expireSeconds := max(int(ttl.Seconds()), 1)
	return &LocalProgressCache{
		cache:         cache,
		expireSeconds: expireSeconds,
		generations:   make(map[uuid.UUID]int64),
	}
}

func (c *LocalProgressCache) Generation(_ context.Context, subjectID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[subjectID], nil
}

func (c *LocalProgressCache) Get(_ context.Context, subjectID uuid.UUID, generation int64) (*ProgressReport, bool, error) {
	reportBytes, err := c.cache.Get([]byte(progressKey(subjectID, generation)))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("local cache get: %w", err)
	}

	var report ProgressReport
	if err := json.Unmarshal(reportBytes, &report); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached progress: %w", err)
	}
	return &report, true, nil
}

// Set drops the report when the subject moved past the given generation.
func (c *LocalProgressCache) Set(_ context.Context, report ProgressReport, generation int64) error {
	reportBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[report.SubjectID] != generation {
		return nil
	}
	if err := c.cache.Set([]byte(progressKey(report.SubjectID, generation)), reportBytes, c.expireSeconds); err != nil {
		return fmt.Errorf("local cache set: %w", err)
	}
	return nil
}

func (c *LocalProgressCache) Invalidate(_ context.Context, subjectID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Del([]byte(progressKey(subjectID, c.generations[subjectID])))
	c.generations[subjectID]++
	return nil
}
