package infra

import (
	"context"
)

// ChanSignal é a variante de domain.Signal baseada em channel com buffer 1.
//
// Set faz um envio não bloqueante (um Set pendente absorve os seguintes);
// Wait drena o buffer, o que equivale a zerar a flag.
type ChanSignal struct {
	ch chan struct{}
}

// NewChanSignal cria um sinal baseado em channel com capacidade 1.
func NewChanSignal() *ChanSignal {
	return &ChanSignal{ch: make(chan struct{}, 1)}
}

func (s *ChanSignal) Set() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

func (s *ChanSignal) IsSet() bool { return len(s.ch) > 0 }

func (s *ChanSignal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	default:
	}

	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
