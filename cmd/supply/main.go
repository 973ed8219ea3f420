package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"stronghold-supply/supply"
	"stronghold-supply/supply/domain"
	"stronghold-supply/supply/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := readConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	runID := uuid.NewString()
	seed := cfg.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	var sink *infra.WriterSink
	if cfg.logToFile {
		sink, err = infra.NewFileSink(cfg.logFile)
		if err != nil {
			log.Fatalf("status sink error: %v", err)
		}
	} else {
		sink = infra.NewStdoutSink()
	}
	defer func() { _ = sink.Close() }()

	var statsStore domain.StatsStore
	if cfg.statsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalf("redis stats ping error: %v", err)
		}

		statsStore = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsRunID(runID),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if cfg.runSeconds > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, time.Duration(cfg.runSeconds)*time.Second)
		defer stop()
	}

	log.Printf("supply run %s: seed=%d rounds=%d runSeconds=%d signals=%s", runID, seed, cfg.rounds, cfg.runSeconds, cfg.signals)
	log.Printf("work: min=%s max=%s waitTimeout=%s roundsPerSecond=%.3f", cfg.workMin, cfg.workMax, cfg.waitTimeout, cfg.roundsPerSecond)
	log.Printf("status: toFile=%v file=%q", cfg.logToFile, cfg.logFile)
	log.Printf("stats: enabled=%v redisAddr=%q prefix=%q bucket=%q ttl=%s", cfg.statsEnabled, cfg.statsRedisAddr, cfg.statsPrefix, cfg.statsBucket, cfg.statsTTL)

	rep, err := supply.Run(ctx, supply.Options{
		Rounds:          cfg.rounds,
		Seed:            seed,
		WorkMin:         cfg.workMin,
		WorkMax:         cfg.workMax,
		WaitTimeout:     cfg.waitTimeout,
		RoundsPerSecond: cfg.roundsPerSecond,
		Signals:         supply.SignalImpl(cfg.signals),
		Sink:            sink,
		Stats:           statsStore,
	})
	if err != nil {
		_ = sink.Close()
		log.Fatalf("supply error after %d rounds: %v", rep.Rounds, err)
	}

	groups := make([]domain.Kind, 0, len(rep.ByGroup))
	for k := range rep.ByGroup {
		groups = append(groups, k)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })
	log.Printf("supply run %s finished: rounds=%d depotEmpty=%v", runID, rep.Rounds, rep.DepotEmpty)
	for _, k := range groups {
		log.Printf("  stronghold %s served %d times", k, rep.ByGroup[k])
	}
}
