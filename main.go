package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"pegsolitaire/communication/client"
	"pegsolitaire/engine"
	"pegsolitaire/experiments"
	"pegsolitaire/experiments/metrics"
	"pegsolitaire/meta"
	"pegsolitaire/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "trace", "One of trace, experiment, verify, serve or check")
	seed := flag.Uint64("seed", meta.DEFAULT_SEED, "Seed of the random player")
	hold := flag.Int("hold", meta.HOLD_CYCLES, "Cycles fed after the game is over")
	configPath := flag.String("config", "", "Experiment config file (YAML)")
	tracePath := flag.String("trace", "", "Golden trace file to verify against")
	addr := flag.String("addr", meta.DEFAULT_ADDR, "Listen address of the reference-model server")
	serverURL := flag.String("url", "http://localhost"+meta.DEFAULT_ADDR, "Server URL to check against")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", *level, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "trace":
		err = runTrace(ctx, *seed, *hold)
	case "experiment":
		err = runExperiment(ctx, *configPath)
	case "verify":
		if *tracePath == "" {
			err = fmt.Errorf("verify needs -trace")
			break
		}
		err = experiments.Verify(ctx, *tracePath, *seed)
	case "serve":
		err = runServer(ctx, *addr)
	case "check":
		err = runCheck(ctx, *serverURL, *seed, *hold)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

// runTrace plays one seeded game and writes its trace to stdout.
func runTrace(ctx context.Context, seed uint64, hold int) error {
	trace, err := experiments.PlaySeed(ctx, seed, hold)
	if err != nil {
		return err
	}
	log.Info().Uint64("seed", seed).Int("cycles", len(trace)).Str("final", trace.Final().String()).Msg("game over")
	return metrics.EncodeTrace(os.Stdout, trace)
}

func runExperiment(ctx context.Context, path string) error {
	cfg := experiments.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = experiments.LoadConfig(path); err != nil {
			return err
		}
	}
	res, err := experiments.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Println(res.Summary)
	return nil
}

// runCheck plays one seeded game against a remote server and the local
// reference model in lockstep.
func runCheck(ctx context.Context, url string, seed uint64, hold int) error {
	c := client.NewClient(url)
	defer func() {
		if err := c.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close remote session")
		}
	}()
	trace, err := engine.CheckedEngine(c, player.NewRandomPlayer(seed), engine.WithHoldCycles(hold)).Run(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("session", c.SessionID()).Int("cycles", len(trace)).Msg("remote model matches")
	return nil
}
