package experiments

import (
	"context"
	"fmt"

	"pegsolitaire/engine"
	"pegsolitaire/experiments/metrics"
	"pegsolitaire/player"
	"pegsolitaire/utils"

	"github.com/rs/zerolog/log"
)

// Result is what a run produced.
type Result struct {
	Dir     string
	Records []metrics.GameRecord
	Summary metrics.Summary
}

// Run plays one seeded random game per seed and stores the game records and
// traces under cfg.OutDir.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	seeds := cfg.SeedList()
	records := make([]metrics.GameRecord, 0, len(seeds))
	collector := metrics.NewCollector()

	log.Info().Msgf("starting %s experiment with %d games...", cfg.Name, len(seeds))

	for i, seed := range seeds {
		collector.Start(seed)
		trace, err := PlaySeed(ctx, seed, cfg.HoldCycles)
		if err != nil {
			return Result{}, fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
		}
		records = append(records, metrics.GameRecord{ID: i + 1, GameMetric: collector.Complete(trace)})

		if cfg.WriteTraces {
			if err := writer.WriteTrace(seed, trace); err != nil {
				return Result{}, fmt.Errorf("failed to write trace for seed %d: %w", seed, err)
			}
		}
		log.Debug().Msgf("completed game %d of %d (seed %d) with %d pieces left", i+1, len(seeds), seed, trace.Final().NumPieces)
	}

	if err := writer.WriteGameRecords(records); err != nil {
		return Result{}, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored game records")

	summary := metrics.Summarize(records)
	log.Info().Msgf("completed %s experiment: %s", cfg.Name, summary)
	return Result{Dir: writer.Dir(), Records: records, Summary: summary}, nil
}

// PlaySeed plays the uniform random game for seed on the reference model.
func PlaySeed(ctx context.Context, seed uint64, holdCycles int) (engine.Trace, error) {
	e := engine.LocalEngine(player.NewRandomPlayer(seed), engine.WithHoldCycles(holdCycles))
	return e.Run(ctx)
}

// Verify replays seed and compares the result with a stored golden trace.
func Verify(ctx context.Context, path string, seed uint64) error {
	golden, err := metrics.ReadTrace(path)
	if err != nil {
		return err
	}
	holds := utils.Count(golden, func(s engine.Step) bool { return s.Hold })
	trace, err := PlaySeed(ctx, seed, holds)
	if err != nil {
		return err
	}
	if len(trace) != len(golden) {
		return fmt.Errorf("seed %d: trace has %d cycles, golden trace has %d", seed, len(trace), len(golden))
	}
	for i := range trace {
		if trace[i] != golden[i] {
			return fmt.Errorf("seed %d: cycle %d differs: got %+v, golden %+v", seed, trace[i].Cycle, trace[i], golden[i])
		}
	}
	log.Info().Uint64("seed", seed).Int("cycles", len(trace)).Msg("trace matches golden trace")
	return nil
}
