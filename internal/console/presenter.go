package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/tictactoe"
)

const clearSequence = "\033[H\033[2J"

// Presenter prints a match to a terminal: a startup line, the board after every
// move and one final announcement.
type Presenter struct {
	out   io.Writer
	delay time.Duration
	clear bool
}

func NewPresenter(out io.Writer, delay time.Duration, clear bool) *Presenter {
	return &Presenter{
		out:   out,
		delay: delay,
		clear: clear,
	}
}

func (that *Presenter) Notify(ctx context.Context, event tictactoe.Event) error {
	var text string

	switch event.Kind {
	case tictactoe.EventStarted:
		text = started(event.Match)
	case tictactoe.EventMoved:
		text = moved(event.Match, event.Move, that.clear)
	case tictactoe.EventFinished:
		text = finished(event.Result)
	default:
		return nil
	}

	if _, err := io.WriteString(that.out, text); err != nil {
		return fmt.Errorf("failed to write %s event: %w", event.Kind, err)
	}

	if event.Kind == tictactoe.EventMoved {
		that.pause(ctx)
	}

	return nil
}

func (that *Presenter) pause(ctx context.Context) {
	if that.delay <= 0 {
		return
	}

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func started(match entity.Match) string {
	var sb strings.Builder

	sb.WriteString("Tic-tac-toe match " + match.ID)
	for i, player := range match.Players {
		if i > 0 {
			sb.WriteString(" vs")
		}
		fmt.Fprintf(&sb, " %s (%s, %s)", player.Mark, player.Name, player.Strategy)
	}
	sb.WriteString("\n\n")

	return sb.String()
}

func moved(match entity.Match, move *tictactoe.Move, clear bool) string {
	var sb strings.Builder

	if clear {
		sb.WriteString(clearSequence)
	}

	if move != nil {
		fmt.Fprintf(&sb, "Move %d: %s -> row %d | col %d\n", move.Seq, move.Mark, move.Cell.Row, move.Cell.Col)
	}

	board := entity.BoardOf(match.Board)
	sb.WriteString(board.Render())

	if match.Turn != entity.EmptyCell {
		fmt.Fprintf(&sb, "Current player: %s\n", match.Turn)
	}
	sb.WriteString("\n")

	return sb.String()
}

func finished(result *tictactoe.Result) string {
	switch {
	case result == nil:
		return "Match over\n"
	case result.Aborted():
		return fmt.Sprintf("Match aborted: %v\n", result.Err)
	case result.Status.Outcome == entity.Won:
		return fmt.Sprintf("Winner: %s!\n", result.Status.Winner)
	default:
		return "Result: draw!\n"
	}
}
