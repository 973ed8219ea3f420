package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stronghold-supply/supply/domain"
)

// WaitPolicy concentra a regra de espera em um sinal, com timeout opcional.
type WaitPolicy struct {
	Timeout time.Duration
}

// Wait espera o sinal.
// - Se `Timeout <= 0`, espera indefinidamente (até ctx cancelar).
// - Se `Timeout > 0`, um sinal que não chega a tempo vira domain.ErrStalled.
func (p WaitPolicy) Wait(ctx context.Context, s domain.Signal) error {
	if p.Timeout <= 0 {
		return s.Wait(ctx)
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	err := s.Wait(waitCtx)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", domain.ErrStalled, p.Timeout)
	}
	return err
}

// sleep é uma pausa que respeita o ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
