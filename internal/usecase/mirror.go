package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/tictactoe"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
}

// MatchMirror keeps the live state of the running match in the repository and
// removes it once the match is over.
type MatchMirror struct {
	logger    *slog.Logger
	matchRepo matchRepo
}

func NewMatchMirror(logger *slog.Logger, matchRepo matchRepo) *MatchMirror {
	return &MatchMirror{
		logger:    logger.With("component", "match_mirror"),
		matchRepo: matchRepo,
	}
}

// Notify writes through even when ctx is already cancelled: an aborted match
// must still be removed from the repository.
func (that *MatchMirror) Notify(ctx context.Context, event tictactoe.Event) error {
	ctx = context.WithoutCancel(ctx)
	match := event.Match

	switch event.Kind {
	case tictactoe.EventStarted, tictactoe.EventMoved:
		if err := that.matchRepo.CreateOrUpdate(ctx, &match); err != nil {
			return fmt.Errorf("failed to update match: %w", err)
		}
	case tictactoe.EventFinished:
		if err := that.matchRepo.DeleteByID(ctx, match.ID); err != nil {
			return fmt.Errorf("failed to delete match: %w", err)
		}

		that.logger.Info("match deleted", "method", "Notify", "matchID", match.ID)
	}

	return nil
}
