package infra

import (
	"context"
	"sync"

	"stronghold-supply/supply/domain"
)

// MemoryStatsStore é uma implementação simples em memória.
// É o que alimenta o relatório final de supply.Run.
//
// Com WithKeepEvents guarda todos os eventos, o que cresce sem limite em
// execuções longas.
type MemoryStatsStore struct {
	mu      sync.Mutex
	total   int64
	byGroup map[domain.Kind]int64
	byPair  map[string]int64
	events  []domain.DispatchEvent

	keepEvents bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithKeepEvents(keep bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.keepEvents = keep }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byGroup: make(map[domain.Kind]int64),
		byPair:  make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.DispatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byGroup[ev.Group]++
	s.byPair[pairKey(ev.Pair)]++
	if s.keepEvents {
		s.events = append(s.events, ev)
	}
	return nil
}

func (s *MemoryStatsStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByGroup() map[domain.Kind]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Kind]int64, len(s.byGroup))
	for k, v := range s.byGroup {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByPair() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.byPair))
	for k, v := range s.byPair {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) Events() []domain.DispatchEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DispatchEvent, len(s.events))
	copy(out, s.events)
	return out
}

// pairKey normaliza o par (ordem canônica dos tipos) para contagem.
func pairKey(p domain.Pair) string {
	if p[0] > p[1] {
		p[0], p[1] = p[1], p[0]
	}
	return p.String()
}

type teeStatsStore []domain.StatsStore

// TeeStatsStore repassa cada evento para todos os stores e retorna o primeiro erro.
func TeeStatsStore(stores ...domain.StatsStore) domain.StatsStore {
	out := make(teeStatsStore, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t teeStatsStore) Record(ctx context.Context, ev domain.DispatchEvent) error {
	var first error
	for _, s := range t {
		if err := s.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
