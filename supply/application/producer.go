package application

import (
	"context"
	"fmt"

	"stronghold-supply/supply/domain"

	"golang.org/x/time/rate"
)

// Producer é o steward: a cada rodada coloca dois tipos distintos no depósito,
// acorda os transportadores desses tipos e espera a confirmação de consumo.
type Producer struct {
	Depot    domain.Depot
	Ready    [domain.NumKinds]domain.Signal // depósito -> transportador, por tipo
	Consumed domain.Signal                  // fortaleza -> produtor
	Chooser  *Chooser
	Sink     domain.StatusSink
	Wait     WaitPolicy

	// Pace limita rodadas por segundo (nil = sem limite).
	Pace *rate.Limiter
	// Rounds é o número de rodadas; <= 0 roda até o ctx encerrar.
	Rounds int

	completed int
}

// Run executa as rodadas. Retorna nil ao completar Rounds.
func (p *Producer) Run(ctx context.Context) error {
	for p.Rounds <= 0 || p.completed < p.Rounds {
		if err := p.Round(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Round executa uma rodada completa: sorteio, colocação + sinal por tipo, espera.
func (p *Producer) Round(ctx context.Context) error {
	if err := p.pace(ctx); err != nil {
		return err
	}

	pair, err := p.Chooser.Pair()
	if err != nil {
		return err
	}

	for _, k := range pair {
		p.Depot.Place(k)
		p.Ready[k.MustValid()].Set()
	}
	p.status("The steward has delivered resources %s and %s to the depot", pair[0], pair[1])

	p.status("The steward is waiting for stronghold to collect supplies")
	if err := p.Wait.Wait(ctx, p.Consumed); err != nil {
		return fmt.Errorf("steward wait: %w", err)
	}
	p.completed++
	p.status("Steward is now ready to collect resources to give to the depot")
	return nil
}

// Completed retorna quantas rodadas foram confirmadas.
func (p *Producer) Completed() int { return p.completed }

func (p *Producer) pace(ctx context.Context) error {
	if p.Pace == nil {
		return nil
	}
	// Reserve + sleep em vez de Wait: Wait falha antes da hora quando o atraso
	// ultrapassa o deadline do ctx.
	r := p.Pace.Reserve()
	if !r.OK() {
		return nil
	}
	if err := sleep(ctx, r.Delay()); err != nil {
		r.Cancel()
		return err
	}
	return nil
}

func (p *Producer) status(format string, args ...any) {
	if p.Sink != nil {
		p.Sink.Write(fmt.Sprintf(format, args...))
	}
}
