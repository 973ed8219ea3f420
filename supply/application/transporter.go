package application

import (
	"context"
	"fmt"

	"stronghold-supply/supply/domain"
)

// Transporter é o dragon rider de um tipo: espera o seu sinal, retira a unidade
// do depósito e entrega ao agregador. Não fala com produtor nem fortalezas.
type Transporter struct {
	Kind       domain.Kind
	Depot      domain.Depot
	Aggregator domain.Aggregator
	Ready      domain.Signal
	Sink       domain.StatusSink
	Wait       WaitPolicy
}

func (t *Transporter) Run(ctx context.Context) error {
	for {
		if err := t.Step(ctx); err != nil {
			return err
		}
	}
}

// Step faz uma entrega.
func (t *Transporter) Step(ctx context.Context) error {
	t.status("Dragon rider %s waiting for the depot", t.Kind)
	if err := t.Wait.Wait(ctx, t.Ready); err != nil {
		return fmt.Errorf("dragon rider %s wait: %w", t.Kind, err)
	}

	u, ok := t.Depot.Take(t.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrLostUnit, t.Kind)
	}
	if u.Kind != t.Kind {
		return fmt.Errorf("%w: rider %s took %s", domain.ErrCrossKind, t.Kind, u.Kind)
	}
	t.status("Dragon rider %s obtained %s from the depot", t.Kind, u)

	if err := t.Aggregator.Submit(ctx, u); err != nil {
		return fmt.Errorf("dragon rider %s submit: %w", t.Kind, err)
	}
	t.status("Dragon rider %s delivered %s to the dragon depot", t.Kind, u)
	return nil
}

func (t *Transporter) status(format string, args ...any) {
	if t.Sink != nil {
		t.Sink.Write(fmt.Sprintf(format, args...))
	}
}
