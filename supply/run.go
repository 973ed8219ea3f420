package supply

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"stronghold-supply/supply/application"
	"stronghold-supply/supply/domain"
	"stronghold-supply/supply/infra"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// SignalImpl escolhe a implementação do sinal ready.
type SignalImpl string

const (
	SignalCond SignalImpl = "cond" // mutex + sync.Cond + flag (padrão)
	SignalChan SignalImpl = "chan" // channel com buffer 1
)

type Options struct {
	// Rounds <= 0 roda até o ctx encerrar.
	Rounds int
	Seed   uint64

	WorkMin time.Duration
	WorkMax time.Duration

	// WaitTimeout limita só a espera do steward pela confirmação da rodada;
	// <= 0 espera indefinidamente. Riders e fortalezas ficam ociosos por tempo
	// ilimitado quando o seu tipo não é sorteado, então nunca têm timeout.
	// Deve cobrir as duas fases da fortaleza (>= 2*WorkMax).
	WaitTimeout time.Duration
	// RoundsPerSecond <= 0 desliga o pacing do steward.
	RoundsPerSecond float64

	Signals SignalImpl
	Sink    domain.StatusSink
	Stats   domain.StatsStore
}

// Report resume uma execução.
type Report struct {
	Rounds     int
	ByGroup    map[domain.Kind]int64
	// Events só é preenchido em execuções limitadas (Rounds > 0).
	Events     []domain.DispatchEvent
	DepotEmpty bool
	// AggregatorCount é o contador do agregador no fim (0 entre rodadas).
	AggregatorCount int
}

// Run monta o depósito, o agregador, os sinais e os sete workers e roda até
// completar Rounds, até o ctx encerrar ou até o primeiro erro fatal.
//
// Encerramento pelo ctx ou por fim das rodadas não é erro. Qualquer outro erro
// (par ambíguo, unidade perdida, espera travada) cancela todos os workers e é
// retornado junto com o relatório parcial.
func Run(ctx context.Context, opts Options) (Report, error) {
	sink := opts.Sink
	if sink == nil {
		sink = infra.NewWriterSink(io.Discard)
	}

	mem := infra.NewMemoryStatsStore(infra.WithKeepEvents(opts.Rounds > 0))
	stats := infra.TeeStatsStore(mem, opts.Stats)

	newSignal := signalFactory(opts.Signals)
	consumed := newSignal("round-consumed")
	var depotReady, groupReady [domain.NumKinds]domain.Signal
	for _, k := range domain.Kinds {
		depotReady[k] = newSignal("depot-" + k.String())
		groupReady[k] = newSignal("stronghold-" + k.String())
	}

	depot := infra.NewDepot()
	agg := infra.NewAggregator(groupReady, infra.WithStats(stats))
	stewardWait := application.WaitPolicy{Timeout: opts.WaitTimeout}
	idleWait := application.WaitPolicy{}
	work := application.WorkWindow{Min: opts.WorkMin, Max: opts.WorkMax}

	producer := &application.Producer{
		Depot:    depot,
		Ready:    depotReady,
		Consumed: consumed,
		Chooser:  application.NewChooser(opts.Seed),
		Sink:     sink,
		Wait:     stewardWait,
		Rounds:   opts.Rounds,
	}
	if opts.RoundsPerSecond > 0 {
		producer.Pace = rate.NewLimiter(rate.Limit(opts.RoundsPerSecond), 1)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	var finished atomic.Bool
	g.Go(func() error {
		if err := producer.Run(gctx); err != nil {
			return err
		}
		finished.Store(true)
		cancel()
		return nil
	})

	for _, k := range domain.Kinds {
		t := &application.Transporter{
			Kind:       k,
			Depot:      depot,
			Aggregator: agg,
			Ready:      depotReady[k],
			Sink:       sink,
			Wait:       idleWait,
		}
		c := &application.Consumer{
			Kind:     k,
			Ready:    groupReady[k],
			Consumed: consumed,
			Sink:     sink,
			Wait:     idleWait,
			Work:     work,
			Rand:     rand.New(rand.NewPCG(opts.Seed, uint64(k)+1)),
		}
		g.Go(func() error { return t.Run(gctx) })
		g.Go(func() error { return c.Run(gctx) })
	}

	err := g.Wait()
	if isShutdown(err) && (finished.Load() || ctx.Err() != nil) {
		err = nil
	}

	_, count := agg.Snapshot()
	rep := Report{
		Rounds:          producer.Completed(),
		ByGroup:         mem.ByGroup(),
		Events:          mem.Events(),
		DepotEmpty:      depot.IsEmpty(),
		AggregatorCount: count,
	}
	return rep, err
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func signalFactory(impl SignalImpl) func(name string) domain.Signal {
	if impl == SignalChan {
		return func(string) domain.Signal { return infra.NewChanSignal() }
	}
	return func(name string) domain.Signal { return infra.NewSignal(name) }
}
