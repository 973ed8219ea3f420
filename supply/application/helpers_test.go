package application

import (
	"context"
	"sync"

	"stronghold-supply/supply/domain"
)

type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) Write(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, message)
}

func (s *recordingSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

type fakeAggregator struct {
	mu    sync.Mutex
	units []domain.Unit
	err   error
}

func (a *fakeAggregator) Submit(_ context.Context, u domain.Unit) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.units = append(a.units, u)
	return a.err
}

// fakeDepot devolve sempre a mesma unidade, independente do tipo pedido.
type fakeDepot struct {
	unit domain.Unit
}

func (d fakeDepot) Place(domain.Kind) {}
func (d fakeDepot) Take(domain.Kind) (domain.Unit, bool) { return d.unit, !d.unit.Empty() }
func (d fakeDepot) Status() map[domain.Kind]bool { return nil }
func (d fakeDepot) IsEmpty() bool { return d.unit.Empty() }

// blockingSignal nunca dispara; Wait só retorna quando o ctx encerra.
type blockingSignal struct{}

func (blockingSignal) Set() {}
func (blockingSignal) Wait(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type immediateSignal struct {
	waits int
}

func (s *immediateSignal) Set() {}
func (s *immediateSignal) Wait(context.Context) error {
	s.waits++
	return nil
}
