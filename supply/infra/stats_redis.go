package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stronghold-supply/supply/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores de despacho em hashes do Redis:
//
//	<prefix>[:<run>]:total            dispatched
//	<prefix>[:<run>]:group            <Kind>
//	<prefix>[:<run>]:pair             <Kind>+<Kind>
//	<prefix>[:<run>]:minute:<yyyymmddhhmm>  <Kind>
type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	runID  string
	// ttl aplica apenas nas chaves de série temporal e nas chaves por execução.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

// WithStatsRunID separa as chaves por execução.
func WithStatsRunID(id string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.runID = strings.TrimSpace(id) }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "supply:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) keyPrefix() string {
	if s.runID == "" {
		return s.prefix
	}
	return s.prefix + ":" + s.runID
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.DispatchEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	base := s.keyPrefix()
	group := ev.Group.String()

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, base+":total", "dispatched", 1)
	pipe.HIncrBy(ctx, base+":group", group, 1)
	pipe.HIncrBy(ctx, base+":pair", pairKey(ev.Pair), 1)

	if s.runID != "" && s.ttl > 0 {
		pipe.Expire(ctx, base+":total", s.ttl)
		pipe.Expire(ctx, base+":group", s.ttl)
		pipe.Expire(ctx, base+":pair", s.ttl)
	}

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", base, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, group, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
