package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell")
	ErrInvalidMark   = errors.New("invalid player mark")
	ErrNoLegalMove   = errors.New("no legal move left")
	ErrMatchAborted  = errors.New("match aborted")
	ErrUnknownPlayer = errors.New("unknown player")
)

// IsRejectedMove reports whether err is a recoverable move rejection: the
// board was left untouched and the same player may propose another cell.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrCellOccupied) || errors.Is(err, ErrInvalidCell)
}
