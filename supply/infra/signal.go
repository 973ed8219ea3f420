package infra

import (
	"context"
	"sync"
)

// ReadySignal implementa domain.Signal com mutex + sync.Cond + flag.
//
// A flag é a verdade: o waiter verifica a flag em loop e a zera antes de soltar
// o lock, então um Set que acontece antes do Wait nunca se perde.
type ReadySignal struct {
	name  string
	mu    sync.Mutex
	cond  *sync.Cond
	ready bool
}

func NewSignal(name string) *ReadySignal {
	s := &ReadySignal{name: name}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *ReadySignal) Name() string { return s.name }

// Set marca a flag e acorda um waiter (se houver).
func (s *ReadySignal) Set() {
	s.mu.Lock()
	s.ready = true
	s.cond.Signal()
	s.mu.Unlock()
}

// IsSet informa se existe um Set ainda não consumido.
func (s *ReadySignal) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Wait bloqueia até a flag ficar true (e a consome) ou até o ctx encerrar.
// Se a flag já estiver true, retorna na hora mesmo com ctx cancelado.
func (s *ReadySignal) Wait(ctx context.Context) error {
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		})
		defer stop()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.ready {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.cond.Wait()
	}
	s.ready = false
	return nil
}
