package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/strategy"
)

type turnCoordinator interface {
	Await(mark entity.Mark) (entity.Board, error)
	Submit(mark entity.Mark, cell entity.Cell) error
}

// Agent plays one mark of a match with a fixed strategy. It only touches the
// board through the coordinator.
type Agent struct {
	logger   *slog.Logger
	mark     entity.Mark
	strategy strategy.Strategy
}

func New(logger *slog.Logger, mark entity.Mark, strat strategy.Strategy) *Agent {
	return &Agent{
		logger:   logger.With("component", "agent", "mark", string(mark), "strategy", strat.Kind().String()),
		mark:     mark,
		strategy: strat,
	}
}

func (that *Agent) Mark() entity.Mark {
	return that.mark
}

// Run waits for its turn, chooses a cell from the board snapshot and submits
// it, until the game is over. A rejected move is retried on the next turn wait.
// It returns nil when the game ends and an error when the agent cannot go on.
func (that *Agent) Run(coordinator turnCoordinator) error {
	log := that.logger.With("method", "Run")

	for {
		board, err := coordinator.Await(that.mark)
		if errors.Is(err, apperror.ErrGameFinished) {
			log.Debug("game over, agent stops")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to await turn: %w", err)
		}

		cell, err := that.strategy.ChooseMove(&board)
		if err != nil {
			return fmt.Errorf("failed to choose move: %w", err)
		}

		err = coordinator.Submit(that.mark, cell)
		switch {
		case err == nil:
			log.Debug("move applied", "cell", cell.String())
		case apperror.IsRejectedMove(err):
			log.Debug("move rejected, retrying", "cell", cell.String(), "error", err)
		case errors.Is(err, apperror.ErrGameFinished):
			return nil
		default:
			return fmt.Errorf("failed to submit move %s: %w", cell, err)
		}
	}
}
