package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	runSeconds      int
	rounds          int
	logToFile       bool
	logFile         string
	seed            uint64
	workMin         time.Duration
	workMax         time.Duration
	waitTimeout     time.Duration
	roundsPerSecond float64
	signals         string

	statsEnabled       bool
	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsBucket        string
}

// fileConfig é o formato do CONFIG_FILE (YAML). Os valores viram o padrão
// das variáveis de ambiente, que continuam tendo precedência.
type fileConfig struct {
	RunSeconds      int     `yaml:"run_seconds"`
	Rounds          int     `yaml:"rounds"`
	LogToFile       bool    `yaml:"log_to_file"`
	LogFile         string  `yaml:"log_file"`
	Seed            uint64  `yaml:"seed"`
	WorkMin         string  `yaml:"work_min"`
	WorkMax         string  `yaml:"work_max"`
	WaitTimeout     string  `yaml:"wait_timeout"`
	RoundsPerSecond float64 `yaml:"rounds_per_second"`
	Signals         string  `yaml:"signals"`

	Stats struct {
		Enabled       bool   `yaml:"enabled"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		Prefix        string `yaml:"prefix"`
		TTL           string `yaml:"ttl"`
		Bucket        string `yaml:"bucket"`
	} `yaml:"stats"`
}

func defaultFileConfig() fileConfig {
	fc := fileConfig{
		LogFile: "log.txt",
		WorkMin: "5s",
		WorkMax: "10s",
		Signals: "cond",
	}
	fc.Stats.Prefix = "supply:stats"
	fc.Stats.TTL = "24h"
	fc.Stats.Bucket = "minute"
	return fc
}

func loadFileConfig(path string) (fileConfig, error) {
	fc := defaultFileConfig()
	if path == "" {
		return fc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// readConfig lê CONFIG_FILE (opcional), depois o ambiente, depois os
// argumentos posicionais `<seconds_to_run> <T|F>`.
func readConfig(args []string) (config, error) {
	path := os.Getenv("CONFIG_FILE")
	fc, err := loadFileConfig(path)
	if err != nil {
		return config{}, err
	}
	workMin, err := fileDuration(path, "work_min", fc.WorkMin, 5*time.Second)
	if err != nil {
		return config{}, err
	}
	workMax, err := fileDuration(path, "work_max", fc.WorkMax, 10*time.Second)
	if err != nil {
		return config{}, err
	}
	waitTimeout, err := fileDuration(path, "wait_timeout", fc.WaitTimeout, 0)
	if err != nil {
		return config{}, err
	}
	statsTTL, err := fileDuration(path, "stats.ttl", fc.Stats.TTL, 24*time.Hour)
	if err != nil {
		return config{}, err
	}

	cfg := config{}
	cfg.runSeconds = getenvIntDefault("RUN_SECONDS", fc.RunSeconds)
	cfg.rounds = getenvIntDefault("ROUNDS", fc.Rounds)
	cfg.logToFile = getenvBoolDefault("LOG_TO_FILE", fc.LogToFile)
	cfg.logFile = getenvDefault("LOG_FILE", fc.LogFile)
	cfg.seed = getenvUintDefault("SEED", fc.Seed)
	cfg.workMin = getenvDurationDefault("WORK_MIN", workMin)
	cfg.workMax = getenvDurationDefault("WORK_MAX", workMax)
	cfg.waitTimeout = getenvDurationDefault("WAIT_TIMEOUT", waitTimeout)
	cfg.roundsPerSecond = getenvFloatDefault("ROUNDS_PER_SECOND", fc.RoundsPerSecond)
	cfg.signals = strings.ToLower(getenvDefault("SIGNALS", fc.Signals))

	cfg.statsEnabled = getenvBoolDefault("STATS_ENABLED", fc.Stats.Enabled)
	cfg.statsRedisAddr = getenvDefault("STATS_REDIS_ADDR", fc.Stats.RedisAddr)
	cfg.statsRedisPassword = getenvDefault("STATS_REDIS_PASSWORD", fc.Stats.RedisPassword)
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", fc.Stats.RedisDB)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", fc.Stats.Prefix)
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", statsTTL)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", fc.Stats.Bucket)

	switch len(args) {
	case 0:
	case 2:
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			return config{}, errors.New("invalid argument for number of seconds: must be an integer")
		}
		cfg.runSeconds = secs
		switch args[1] {
		case "T":
			cfg.logToFile = true
		case "F":
			cfg.logToFile = false
		default:
			return config{}, errors.New("invalid argument for logging: must be T or F")
		}
	default:
		return config{}, errors.New("usage: supply [<seconds_to_run> <T|F>]")
	}

	if cfg.statsEnabled && strings.TrimSpace(cfg.statsRedisAddr) == "" {
		return config{}, errors.New("STATS_REDIS_ADDR is required when STATS_ENABLED=true")
	}
	if cfg.runSeconds < 0 {
		return config{}, errors.New("RUN_SECONDS must be >= 0")
	}
	if cfg.rounds < 0 {
		return config{}, errors.New("ROUNDS must be >= 0")
	}
	if cfg.workMin < 0 || cfg.workMax < cfg.workMin {
		return config{}, errors.New("WORK_MIN/WORK_MAX must satisfy 0 <= WORK_MIN <= WORK_MAX")
	}
	// o steward espera distribuir + consumir, até 2*WORK_MAX por rodada
	if cfg.waitTimeout > 0 && cfg.waitTimeout < 2*cfg.workMax {
		return config{}, fmt.Errorf("WAIT_TIMEOUT must be 0 or >= 2*WORK_MAX (%s), got %s", 2*cfg.workMax, cfg.waitTimeout)
	}
	if cfg.signals != "cond" && cfg.signals != "chan" {
		return config{}, fmt.Errorf("SIGNALS must be cond or chan, got %q", cfg.signals)
	}
	if cfg.logToFile && strings.TrimSpace(cfg.logFile) == "" {
		return config{}, errors.New("LOG_FILE is required when LOG_TO_FILE=true")
	}
	return cfg, nil
}

// fileDuration interpreta um campo de duração do arquivo; vazio usa o padrão.
func fileDuration(path, field, v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", path, field, err)
	}
	return d, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvUintDefault(k string, def uint64) uint64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return u
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
