package metrics

import (
	"time"

	"pegsolitaire/engine"
)

// GameMetric summarises one seeded game.
type GameMetric struct {
	Seed        uint64
	Moves       int
	FinalPieces int
	GameOver    bool
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// Collector measures games as they are played.
type Collector interface {
	Start(seed uint64)
	Complete(trace engine.Trace) GameMetric
}

type collector struct {
	seed      uint64
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(seed uint64) {
	c.seed = seed
	c.startTime = time.Now()
}

func (c *collector) Complete(trace engine.Trace) GameMetric {
	end := time.Now()
	m := GameMetric{
		Seed:      c.seed,
		Moves:     len(trace.Moves()),
		StartTime: c.startTime,
		EndTime:   end,
		Duration:  end.Sub(c.startTime),
	}
	if final := trace.Final(); final != nil {
		m.FinalPieces = final.NumPieces
		m.GameOver = final.GameOver
	}
	return m
}
