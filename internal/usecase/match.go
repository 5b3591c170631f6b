package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-duel/internal/agent"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/strategy"
	"github.com/rocketscienceinc/tictactoe-duel/internal/tictactoe"
)

// Listener receives every event of a match in order. Errors are logged and never
// stop the match.
type Listener interface {
	Notify(ctx context.Context, event tictactoe.Event) error
}

type seat struct {
	player entity.Player
	kind   strategy.Kind
}

// lineup is fixed: X picks at random and moves first, O scans sequentially.
var lineup = [2]seat{
	{player: entity.Player{Name: "random agent", Mark: entity.PlayerX}, kind: strategy.Random},
	{player: entity.Player{Name: "sequential agent", Mark: entity.PlayerO}, kind: strategy.Sequential},
}

type MatchManager struct {
	logger    *slog.Logger
	listeners []Listener

	newStrategy func(kind strategy.Kind) (strategy.Strategy, error)

	mu      sync.RWMutex
	current *tictactoe.Coordinator
}

func NewMatchManager(logger *slog.Logger, listeners ...Listener) *MatchManager {
	return &MatchManager{
		logger:    logger.With("component", "match_manager"),
		listeners: listeners,

		newStrategy: func(kind strategy.Kind) (strategy.Strategy, error) {
			return strategy.New(kind)
		},
	}
}

// Play runs one match to the end: both agents on their own goroutine, joined
// before returning, and a reporter goroutine that hands every event to the
// listeners. Cancelling ctx aborts the match.
func (that *MatchManager) Play(ctx context.Context) (tictactoe.Result, error) {
	matchID := uuid.NewString()
	log := that.logger.With("method", "Play", "matchID", matchID)

	players := [2]entity.Player{}
	agents := make([]*agent.Agent, 0, len(lineup))
	for i, s := range lineup {
		strat, err := that.newStrategy(s.kind)
		if err != nil {
			return tictactoe.Result{}, fmt.Errorf("failed to create %s strategy: %w", s.kind, err)
		}

		players[i] = s.player
		players[i].Strategy = strat.Kind().String()
		agents = append(agents, agent.New(that.logger, s.player.Mark, strat))
	}

	coordinator, err := tictactoe.NewCoordinator(matchID, players[0], players[1])
	if err != nil {
		return tictactoe.Result{}, fmt.Errorf("failed to create coordinator: %w", err)
	}
	that.setCurrent(coordinator)

	stop := context.AfterFunc(ctx, func() {
		coordinator.Abort(ctx.Err())
	})
	defer stop()

	// listeners see this context cancelled as soon as the match is aborted, so
	// pacing stops; listeners that must finish their I/O detach from it
	reportCtx, stopReport := context.WithCancelCause(ctx)
	defer stopReport(nil)

	reported := make(chan struct{})
	go func() {
		defer close(reported)
		that.report(reportCtx, coordinator.Events())
	}()

	log.Info("match started")

	var group errgroup.Group
	for _, a := range agents {
		group.Go(func() error {
			if err := a.Run(coordinator); err != nil {
				coordinator.Abort(err)
				stopReport(err)
				return fmt.Errorf("agent %s failed: %w", a.Mark(), err)
			}

			return nil
		})
	}

	runErr := group.Wait()
	<-reported

	result := coordinator.Wait()
	if result.Aborted() {
		log.Warn("match aborted", "error", result.Err)
		if runErr != nil {
			return result, runErr
		}

		return result, result.Err
	}

	log.Info("match finished", "status", result.Status.String(), "moves", result.Moves, "rejected", result.Rejected)

	return result, nil
}

// Current returns a snapshot of the running match, or of the last one played.
func (that *MatchManager) Current() (entity.Match, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.current == nil {
		return entity.Match{}, false
	}

	return that.current.Snapshot(), true
}

func (that *MatchManager) setCurrent(coordinator *tictactoe.Coordinator) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.current = coordinator
}

func (that *MatchManager) report(ctx context.Context, events <-chan tictactoe.Event) {
	log := that.logger.With("method", "report")

	for event := range events {
		for _, l := range that.listeners {
			if err := l.Notify(ctx, event); err != nil {
				log.Error("listener failed", "event", event.Kind.String(), "matchID", event.Match.ID, "error", err)
			}
		}
	}
}
