package infra

import (
	"context"
	"log"
	"sync"
	"time"

	"stronghold-supply/supply/domain"
)

const aggregatorSlots = 2

// Aggregator coleta duas unidades por rodada e acorda a fortaleza do tipo
// ausente no par. Implementa domain.Aggregator.
type Aggregator struct {
	mu     sync.Mutex
	slots  [aggregatorSlots]domain.Unit
	count  int
	rounds uint64

	groups [domain.NumKinds]domain.Signal
	stats  domain.StatsStore
	logf   func(format string, args ...any)
	now    func() time.Time
}

type AggregatorOption func(*Aggregator)

// WithStats registra cada despacho no store (best-effort).
func WithStats(store domain.StatsStore) AggregatorOption {
	return func(a *Aggregator) { a.stats = store }
}

func WithErrorLog(logf func(format string, args ...any)) AggregatorOption {
	return func(a *Aggregator) { a.logf = logf }
}

func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator recebe o sinal de cada fortaleza, indexado pelo tipo dela.
func NewAggregator(groups [domain.NumKinds]domain.Signal, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		groups: groups,
		logf:   log.Printf,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Submit ocupa o primeiro slot livre. Ao completar o par, decide a fortaleza,
// registra o despacho, zera o estado e só então acorda a fortaleza (fora do lock).
//
// Um par com o mesmo tipo repetido retorna domain.ErrAmbiguousPair, não acorda
// ninguém e também zera o estado.
func (a *Aggregator) Submit(ctx context.Context, u domain.Unit) error {
	u.Kind.MustValid()

	a.mu.Lock()
	a.slots[a.count] = u
	a.count++
	if a.count < aggregatorSlots {
		a.mu.Unlock()
		return nil
	}

	pair := domain.Pair{a.slots[0].Kind, a.slots[1].Kind}
	a.slots = [aggregatorSlots]domain.Unit{}
	a.count = 0

	group, err := domain.AbsentKind(pair)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.rounds++
	ev := domain.DispatchEvent{Round: a.rounds, Pair: pair, Group: group, At: a.now()}
	a.mu.Unlock()

	// registro antes do Set: a próxima rodada só começa depois que a fortaleza acorda
	a.record(ctx, ev)
	a.groups[group].Set()
	return nil
}

func (a *Aggregator) record(ctx context.Context, ev domain.DispatchEvent) {
	if a.stats == nil {
		return
	}
	if err := a.stats.Record(ctx, ev); err != nil && a.logf != nil {
		a.logf("dispatch stats error: round=%d group=%s: %v", ev.Round, ev.Group, err)
	}
}

// Snapshot retorna os slots e o contador atuais.
func (a *Aggregator) Snapshot() ([aggregatorSlots]domain.Unit, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.slots, a.count
}

// Rounds retorna quantos despachos válidos já aconteceram.
func (a *Aggregator) Rounds() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rounds
}
