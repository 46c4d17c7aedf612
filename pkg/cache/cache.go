package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/fuzzy"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "settlement-search:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient connects to redis and checks the connection with a PING.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// QueryCache caches final search results in redis. identical concurrent queries are computed once.
type QueryCache struct {
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
	log   *zap.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *QueryCache {
	return &QueryCache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *QueryCache) get(ctx context.Context, key string) ([]string, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Error("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var names []string
	if err := msgpack.Unmarshal(data, &names); err != nil {
		c.log.Error("cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return names, true
}

func (c *QueryCache) set(ctx context.Context, key string, names []string) {
	data, err := msgpack.Marshal(names)
	if err != nil {
		c.log.Error("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// GetOrCompute returns the cached result of req, or computes, stores and returns it.
// the bool reports a cache hit. a redis failure only costs the cache, never the query.
// compute runs once for concurrent identical requests, detached from any single caller's
// cancellation. each caller still returns as soon as its own ctx is done.
func (c *QueryCache) GetOrCompute(ctx context.Context, req searcher.Request,
	compute func(ctx context.Context) ([]string, error)) ([]string, bool, error) {
	key := BuildKey(req)
	if names, ok := c.get(ctx, key); ok {
		return names, true, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if names, ok := c.get(shared, key); ok {
			return names, nil
		}
		names, err := compute(shared)
		if err != nil {
			return nil, err
		}
		c.set(shared, key, names)
		return names, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.([]string), false, nil
	}
}

// Invalidate drops every cached result. called after indexes are rebuilt.
func (c *QueryCache) Invalidate(ctx context.Context) (int64, error) {
	var deleted int64
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("deleting key %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("invalidating cache: %w", err)
	}
	c.log.Info("cache invalidated", zap.Int64("keys_deleted", deleted))
	return deleted, nil
}

// BuildKey. requests that always produce the same result map to the same key.
func BuildKey(req searcher.Request) string {
	var sb strings.Builder
	sb.WriteString("q=")
	sb.WriteString(fuzzy.Normalize(req.Query))

	countries := make([]string, 0, len(req.Countries))
	for _, c := range req.Countries {
		countries = append(countries, string(c))
	}
	sort.Strings(countries)
	sb.WriteString("|c=")
	sb.WriteString(strings.Join(dedupe(countries), ","))

	kinds := make([]string, 0, len(req.SettlementKinds))
	for country, ks := range req.SettlementKinds {
		parts := make([]string, 0, len(ks))
		for _, k := range ks {
			parts = append(parts, string(k))
		}
		sort.Strings(parts)
		kinds = append(kinds, string(country)+":"+strings.Join(dedupe(parts), "+"))
	}
	sort.Strings(kinds)
	sb.WriteString("|k=")
	sb.WriteString(strings.Join(kinds, ","))

	adjustments := make([]string, 0, len(req.ScoreAdjustment))
	for kind, v := range req.ScoreAdjustment {
		if v == 0 {
			continue
		}
		adjustments = append(adjustments, string(kind)+"="+strconv.FormatFloat(v, 'g', -1, 64))
	}
	sort.Strings(adjustments)
	sb.WriteString("|a=")
	sb.WriteString(strings.Join(adjustments, ","))

	sb.WriteString("|l=")
	if req.Limit != nil {
		sb.WriteString(strconv.Itoa(*req.Limit))
	}
	sb.WriteString("|t=")
	if req.Threshold != nil {
		sb.WriteString(strconv.FormatFloat(*req.Threshold, 'g', -1, 64))
	}

	hash := sha256.Sum256([]byte(sb.String()))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
