package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/tictactoe"
)

const namespace = "tictactoe"

const (
	OutcomeWon     = "won"
	OutcomeDrawn   = "drawn"
	OutcomeAborted = "aborted"
)

// Collector turns match events into Prometheus metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	moves      *prometheus.CounterVec
	matches    *prometheus.CounterVec
	rejected   prometheus.Counter
	inProgress prometheus.Gauge
}

func NewCollector() *Collector {
	collector := &Collector{
		registry: prometheus.NewRegistry(),

		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Applied moves by mark.",
		}, []string{"mark"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Finished matches by outcome.",
		}, []string{"outcome"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_moves_total",
			Help:      "Moves rejected by the board and retried.",
		}),
		inProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "match_in_progress",
			Help:      "1 while a match is being played.",
		}),
	}

	collector.registry.MustRegister(
		collector.moves,
		collector.matches,
		collector.rejected,
		collector.inProgress,
		collectors.NewGoCollector(),
	)

	return collector
}

func (that *Collector) Registry() *prometheus.Registry {
	return that.registry
}

func (that *Collector) Notify(_ context.Context, event tictactoe.Event) error {
	switch event.Kind {
	case tictactoe.EventStarted:
		that.inProgress.Set(1)
	case tictactoe.EventMoved:
		if event.Move != nil {
			that.moves.WithLabelValues(string(event.Move.Mark)).Inc()
		}
	case tictactoe.EventFinished:
		that.inProgress.Set(0)
		if event.Result != nil {
			that.matches.WithLabelValues(outcome(*event.Result)).Inc()
			that.rejected.Add(float64(event.Result.Rejected))
		}
	}

	return nil
}

func outcome(result tictactoe.Result) string {
	switch {
	case result.Aborted():
		return OutcomeAborted
	case result.Status.Outcome == entity.Won:
		return OutcomeWon
	default:
		return OutcomeDrawn
	}
}
