package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// WinCombos lists every line of three cells, by row-major index: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the mark of the other player, or EmptyCell for anything that is not a player mark.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func CellFromIndex(index int) Cell {
	return Cell{Row: index / BoardSize, Col: index % BoardSize}
}

func (that Cell) Index() int {
	return that.Row*BoardSize + that.Col
}

func (that Cell) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a 3x3 grid stored in row-major order. The zero value is an empty board,
// and copying a Board produces an independent snapshot.
type Board struct {
	cells [CellCount]Mark
}

func NewBoard() Board {
	return Board{}
}

// BoardOf rebuilds a board from the cells of a Match snapshot.
func BoardOf(cells [CellCount]Mark) Board {
	return Board{cells: cells}
}

// IsLegal reports whether (row, col) lies on the board and is still empty.
func (that *Board) IsLegal(row, col int) bool {
	cell := Cell{Row: row, Col: col}
	if !cell.InRange() {
		return false
	}

	return that.cells[cell.Index()] == EmptyCell
}

// ApplyMove is the only code path that writes cells. A rejected move leaves the board untouched.
func (that *Board) ApplyMove(mark Mark, row, col int) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	cell := Cell{Row: row, Col: col}
	if !cell.InRange() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, cell)
	}

	if that.cells[cell.Index()] != EmptyCell {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, cell)
	}

	that.cells[cell.Index()] = mark

	return nil
}

// At returns the mark at (row, col), or EmptyCell when the coordinates are off the board.
func (that *Board) At(row, col int) Mark {
	cell := Cell{Row: row, Col: col}
	if !cell.InRange() {
		return EmptyCell
	}

	return that.cells[cell.Index()]
}

func (that *Board) Cells() [CellCount]Mark {
	return that.cells
}

func (that *Board) EmptyCount() int {
	count := 0
	for _, cell := range that.cells {
		if cell == EmptyCell {
			count++
		}
	}

	return count
}

// Status evaluates every line before falling back to the draw check, so a full
// board that contains a line is Won and never Drawn.
func (that *Board) Status(lastMover Mark) GameStatus {
	winner := EmptyCell
	for _, combo := range WinCombos {
		a, b, c := that.cells[combo[0]], that.cells[combo[1]], that.cells[combo[2]]
		if a == EmptyCell || a != b || b != c {
			continue
		}

		if a == lastMover {
			return GameStatus{Outcome: Won, Winner: a}
		}

		winner = a
	}

	if winner != EmptyCell {
		return GameStatus{Outcome: Won, Winner: winner}
	}

	if that.EmptyCount() > 0 {
		return GameStatus{Outcome: InProgress}
	}

	return GameStatus{Outcome: Drawn}
}

// Render draws the grid left-to-right, top-to-bottom.
func (that *Board) Render() string {
	var sb strings.Builder

	for row := range BoardSize {
		for col := range BoardSize {
			mark := that.cells[Cell{Row: row, Col: col}.Index()]
			if mark == EmptyCell {
				mark = " "
			}

			if col > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(" " + string(mark) + " ")
		}
		sb.WriteString("\n")

		if row < BoardSize-1 {
			sb.WriteString("---+---+---\n")
		}
	}

	return sb.String()
}
