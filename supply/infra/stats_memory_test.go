package infra

import (
	"context"
	"errors"
	"testing"

	"stronghold-supply/supply/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatsStore_CountsByGroupAndPair(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStatsStore()

	require.NoError(t, s.Record(ctx, domain.DispatchEvent{Round: 1, Pair: domain.Pair{domain.Klah, domain.Burnstone}, Group: domain.Seaplum}))
	require.NoError(t, s.Record(ctx, domain.DispatchEvent{Round: 2, Pair: domain.Pair{domain.Burnstone, domain.Klah}, Group: domain.Seaplum}))
	require.NoError(t, s.Record(ctx, domain.DispatchEvent{Round: 3, Pair: domain.Pair{domain.Seaplum, domain.Klah}, Group: domain.Burnstone}))

	assert.Equal(t, int64(3), s.Total())
	assert.Equal(t, map[domain.Kind]int64{domain.Seaplum: 2, domain.Burnstone: 1}, s.ByGroup())
	assert.Equal(t, map[string]int64{"Burnstone+Klah": 2, "Seaplum+Klah": 1}, s.ByPair())
	assert.Empty(t, s.Events(), "events are kept only with WithKeepEvents")
}

type recordingStats struct {
	got []domain.DispatchEvent
	err error
}

func (r *recordingStats) Record(_ context.Context, ev domain.DispatchEvent) error {
	r.got = append(r.got, ev)
	return r.err
}

func TestTeeStatsStore_FansOutAndReturnsFirstError(t *testing.T) {
	a := &recordingStats{err: errors.New("a failed")}
	b := &recordingStats{}
	tee := TeeStatsStore(a, nil, b)

	ev := domain.DispatchEvent{Round: 1, Group: domain.Klah}
	err := tee.Record(context.Background(), ev)

	assert.EqualError(t, err, "a failed")
	assert.Equal(t, []domain.DispatchEvent{ev}, a.got)
	assert.Equal(t, []domain.DispatchEvent{ev}, b.got)
}

func TestRedisStatsStore_NilClientIsNoop(t *testing.T) {
	var s *RedisStatsStore
	assert.NoError(t, s.Record(context.Background(), domain.DispatchEvent{}))

	s = NewRedisStatsStore(nil, WithStatsPrefix(":supply:test:"), WithStatsRunID("run-1"))
	assert.Equal(t, "supply:test:run-1", s.keyPrefix())
	assert.NoError(t, s.Record(context.Background(), domain.DispatchEvent{}))
}
