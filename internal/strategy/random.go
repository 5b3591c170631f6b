package strategy

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

type random struct {
	rng *rand.Rand
}

func newRandom(rng *rand.Rand) *random {
	return &random{rng: rng}
}

func (that *random) Kind() Kind {
	return Random
}

// ChooseMove samples row and column independently until it hits a legal cell.
// It refuses to sample a board without legal cells so that it always terminates.
func (that *random) ChooseMove(board BoardView) (entity.Cell, error) {
	if !hasLegalCell(board) {
		return entity.Cell{}, apperror.ErrNoLegalMove
	}

	for {
		cell := entity.Cell{
			Row: that.rng.IntN(entity.BoardSize),
			Col: that.rng.IntN(entity.BoardSize),
		}

		if board.IsLegal(cell.Row, cell.Col) {
			return cell, nil
		}
	}
}

func hasLegalCell(board BoardView) bool {
	for i := range entity.CellCount {
		cell := entity.CellFromIndex(i)
		if board.IsLegal(cell.Row, cell.Col) {
			return true
		}
	}

	return false
}
