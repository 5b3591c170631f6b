package strategy

import (
	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// sequential scans cells in row-major order. The cursor only moves forward:
// every tested cell is skipped for good, including the one that gets played.
type sequential struct {
	cursor int
}

func newSequential() *sequential {
	return &sequential{}
}

func (that *sequential) Kind() Kind {
	return Sequential
}

// ChooseMove returns apperror.ErrNoLegalMove and proposes nothing once the cursor
// has passed the last cell.
func (that *sequential) ChooseMove(board BoardView) (entity.Cell, error) {
	for that.cursor < entity.CellCount {
		cell := entity.CellFromIndex(that.cursor)
		that.cursor++

		if board.IsLegal(cell.Row, cell.Col) {
			return cell, nil
		}
	}

	return entity.Cell{}, apperror.ErrNoLegalMove
}
