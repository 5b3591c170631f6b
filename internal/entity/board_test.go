package entity

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
)

func boardOf(cells ...Mark) Board {
	var board Board
	copy(board.cells[:], cells)
	return board
}

const (
	x = PlayerX
	o = PlayerO
	e = EmptyCell
)

func TestBoard_IsLegal(t *testing.T) {
	t.Run("Empty cell inside the board is legal", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// Then: every cell is legal
		for i := range CellCount {
			cell := CellFromIndex(i)
			assert.True(t, board.IsLegal(cell.Row, cell.Col), cell.String())
		}
	})

	t.Run("Out of range coordinates are not legal", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// Then: coordinates outside [0,3) are rejected
		assert.False(t, board.IsLegal(-1, 0))
		assert.False(t, board.IsLegal(0, -1))
		assert.False(t, board.IsLegal(3, 0))
		assert.False(t, board.IsLegal(0, 3))
	})

	t.Run("Occupied cell is not legal", func(t *testing.T) {
		// Given: a board where (1, 1) is taken
		board := boardOf(e, e, e, e, x, e, e, e, e)

		// Then: (1, 1) is not legal, its neighbour is
		assert.False(t, board.IsLegal(1, 1))
		assert.True(t, board.IsLegal(1, 2))
	})
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Successful move", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X plays (0, 2)
		err := board.ApplyMove(PlayerX, 0, 2)

		// Then: only that cell changes
		require.NoError(t, err)
		assert.Equal(t, boardOf(e, e, x, e, e, e, e, e, e), board)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board where X holds (0, 0)
		board := boardOf(x, e, e, e, e, e, e, e, e)
		before := board

		// When: O tries to play the same cell
		err := board.ApplyMove(PlayerO, 0, 0)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.True(t, apperror.IsRejectedMove(err))
		assert.Equal(t, before, board)
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: a move is placed off the board
		err := board.ApplyMove(PlayerX, 3, 1)

		// Then: ErrInvalidCell is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, NewBoard(), board)
	})

	t.Run("Error on invalid mark", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: the empty mark is applied
		err := board.ApplyMove(EmptyCell, 0, 0)

		// Then: ErrInvalidMark is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.False(t, apperror.IsRejectedMove(err))
	})
}

func TestBoard_Status(t *testing.T) {
	t.Run("Win with an empty cell left is Won, not Drawn", func(t *testing.T) {
		// Given: X X X / O O _ / _ _ _
		board := boardOf(x, x, x, o, o, e, e, e, e)

		// When: checking the status with X as last mover
		status := board.Status(PlayerX)

		// Then: X has won
		assert.Equal(t, GameStatus{Outcome: Won, Winner: PlayerX}, status)
		assert.True(t, status.IsTerminal())
	})

	t.Run("Full board without a line is Drawn", func(t *testing.T) {
		// Given: a full board where nobody has three in a row
		board := boardOf(
			x, o, x,
			x, o, o,
			o, x, x,
		)

		// When: checking the status
		status := board.Status(PlayerX)

		// Then: the game is a draw
		assert.Equal(t, GameStatus{Outcome: Drawn}, status)
	})

	t.Run("Full board with a line is Won", func(t *testing.T) {
		// Given: a full board whose last move completes the anti-diagonal
		board := boardOf(
			o, x, x,
			x, x, o,
			x, o, o,
		)

		// When: checking the status
		status := board.Status(PlayerX)

		// Then: X wins even though no empty cell remains
		assert.Equal(t, GameStatus{Outcome: Won, Winner: PlayerX}, status)
	})

	t.Run("Every line is detected", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where only this line belongs to O
			var board Board
			for _, idx := range combo {
				board.cells[idx] = PlayerO
			}

			// Then: O wins
			assert.Equal(t, GameStatus{Outcome: Won, Winner: PlayerO}, board.Status(PlayerO), "%v", combo)
		}
	})

	t.Run("Line of the other player is still reported", func(t *testing.T) {
		// Given: a column of O while X is reported as last mover
		board := boardOf(o, x, e, o, x, e, o, e, x)

		// Then: the scan is exhaustive and finds O
		assert.Equal(t, GameStatus{Outcome: Won, Winner: PlayerO}, board.Status(PlayerX))
	})

	t.Run("Ongoing game", func(t *testing.T) {
		// Given: a board with no line and empty cells
		board := boardOf(x, o, x, e, o, e, e, e, e)

		// Then: the game is in progress
		status := board.Status(PlayerO)
		assert.Equal(t, GameStatus{Outcome: InProgress}, status)
		assert.False(t, status.IsTerminal())
	})
}

// hasLine is an independent oracle for the status property.
func hasLine(board Board, mark Mark) bool {
	grid := board.Cells()
	for i := range BoardSize {
		if grid[i*3] == mark && grid[i*3+1] == mark && grid[i*3+2] == mark {
			return true
		}
		if grid[i] == mark && grid[i+3] == mark && grid[i+6] == mark {
			return true
		}
	}

	return (grid[0] == mark && grid[4] == mark && grid[8] == mark) ||
		(grid[2] == mark && grid[4] == mark && grid[6] == mark)
}

func TestBoard_StatusMatchesOracleOnReachableBoards(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for game := 0; game < 500; game++ {
		board := NewBoard()
		mover := PlayerX

		for {
			free := make([]int, 0, CellCount)
			for i, cell := range board.Cells() {
				if cell == EmptyCell {
					free = append(free, i)
				}
			}

			cell := CellFromIndex(free[rng.IntN(len(free))])
			require.NoError(t, board.ApplyMove(mover, cell.Row, cell.Col))

			status := board.Status(mover)
			switch status.Outcome {
			case Won:
				require.True(t, hasLine(board, status.Winner))
			case Drawn:
				require.Zero(t, board.EmptyCount())
				require.False(t, hasLine(board, PlayerX))
				require.False(t, hasLine(board, PlayerO))
			case InProgress:
				require.NotZero(t, board.EmptyCount())
				require.False(t, hasLine(board, PlayerX))
				require.False(t, hasLine(board, PlayerO))
			}

			if status.IsTerminal() {
				break
			}

			mover = mover.Opponent()
		}
	}
}

func TestBoard_Render(t *testing.T) {
	// Given: X _ O / _ X _ / O _ _
	board := boardOf(x, e, o, e, x, e, o, e, e)

	// When: rendering the board
	out := board.Render()

	// Then: rows are drawn top to bottom, cells left to right
	expected := "" +
		" X |   | O \n" +
		"---+---+---\n" +
		"   | X |   \n" +
		"---+---+---\n" +
		" O |   |   \n"
	assert.Equal(t, expected, out)
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}

func TestCell_Index(t *testing.T) {
	for i := range CellCount {
		assert.Equal(t, i, CellFromIndex(i).Index())
	}
	assert.Equal(t, Cell{Row: 2, Col: 1}, CellFromIndex(7))
}
