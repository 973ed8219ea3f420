package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"stronghold-supply/supply/domain"
)

// WorkWindow é o intervalo [Min, Max] de duração de cada fase de trabalho.
type WorkWindow struct {
	Min time.Duration
	Max time.Duration
}

// Draw sorteia uniformemente em [Min, Max]. Max <= Min retorna Min.
func (w WorkWindow) Draw(r *rand.Rand) time.Duration {
	if w.Max <= w.Min {
		return w.Min
	}
	span := int64(w.Max-w.Min) + 1
	if r == nil {
		return w.Min + time.Duration(rand.Int64N(span))
	}
	return w.Min + time.Duration(r.Int64N(span))
}

// Consumer é a fortaleza de um tipo. Ela precisa dos dois tipos que não produz;
// o agregador a acorda quando esse par chega.
type Consumer struct {
	Kind     domain.Kind
	Ready    domain.Signal // agregador -> fortaleza
	Consumed domain.Signal // fortaleza -> produtor
	Sink     domain.StatusSink
	Wait     WaitPolicy
	Work     WorkWindow
	// Rand sorteia as durações; nil usa o gerador global.
	Rand *rand.Rand
}

func (c *Consumer) Run(ctx context.Context) error {
	for {
		if err := c.Step(ctx); err != nil {
			return err
		}
	}
}

// Step espera os recursos, confirma ao produtor logo ao acordar e depois
// simula distribuição e consumo. As fases não tocam estado compartilhado.
func (c *Consumer) Step(ctx context.Context) error {
	c.status("Stronghold %s waiting for its resources", c.Kind)
	if err := c.Wait.Wait(ctx, c.Ready); err != nil {
		return fmt.Errorf("stronghold %s wait: %w", c.Kind, err)
	}
	c.status("Dragon riders had delivered resources to Stronghold %s", c.Kind)

	c.Consumed.Set()

	if err := c.phase(ctx, "distributing"); err != nil {
		return err
	}
	return c.phase(ctx, "consuming")
}

func (c *Consumer) phase(ctx context.Context, verb string) error {
	d := c.Work.Draw(c.Rand)
	c.status("Stronghold %s is now %s resources", c.Kind, verb)
	if err := sleep(ctx, d); err != nil {
		return err
	}
	c.status("Stronghold %s has finished %s resources", c.Kind, verb)
	return nil
}

func (c *Consumer) status(format string, args ...any) {
	if c.Sink != nil {
		c.Sink.Write(fmt.Sprintf(format, args...))
	}
}
