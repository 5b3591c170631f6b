package tictactoe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

var ErrInvalidPlayers = errors.New("players must hold the X and O marks")

// State is either WaitingFor(Turn) or, once Over is set, GameOver.
type State struct {
	Turn entity.Mark
	Over bool
}

func (that State) String() string {
	if that.Over {
		return "game over"
	}

	return "waiting for " + string(that.Turn)
}

type Move struct {
	Seq  int         `json:"seq"`
	Mark entity.Mark `json:"mark"`
	Cell entity.Cell `json:"cell"`
}

type Result struct {
	Status   entity.GameStatus
	Moves    int
	Rejected int
	// Err is set when the match was aborted instead of played out.
	Err error
}

func (that Result) Aborted() bool {
	return that.Err != nil
}

// Coordinator is the monitor shared by both agents of a match. The board, the
// turn token and the termination flag are guarded together by mu, and cond
// waits on mu.
type Coordinator struct {
	mu   sync.Mutex
	cond *sync.Cond

	id      string
	players [2]entity.Player

	board    entity.Board
	turn     entity.Mark
	over     bool
	result   Result
	moves    []Move
	rejected int

	// sized for Started, one Moved per cell and Finished, so sends under mu never block
	events chan Event
}

// NewCoordinator creates a match with an empty board where first moves first.
func NewCoordinator(matchID string, first, second entity.Player) (*Coordinator, error) {
	if !first.Mark.IsPlayer() || second.Mark != first.Mark.Opponent() {
		return nil, fmt.Errorf("%w: got %q and %q", ErrInvalidPlayers, first.Mark, second.Mark)
	}

	coordinator := &Coordinator{
		id:      matchID,
		players: [2]entity.Player{first, second},
		board:   entity.NewBoard(),
		turn:    first.Mark,
		moves:   make([]Move, 0, entity.CellCount),
		events:  make(chan Event, entity.CellCount+2),
	}
	coordinator.cond = sync.NewCond(&coordinator.mu)

	coordinator.publish(Event{Kind: EventStarted, Match: coordinator.snapshot()})

	return coordinator, nil
}

func (that *Coordinator) ID() string {
	return that.id
}

func (that *Coordinator) Players() [2]entity.Player {
	return that.players
}

// Events returns the ordered event stream of the match. It is closed right after
// the EventFinished event.
func (that *Coordinator) Events() <-chan Event {
	return that.events
}

// Await blocks until it is mark's turn or the game is over. The predicate is
// re-checked after every wakeup. On mark's turn it returns a snapshot of the
// board; once the game is over it returns apperror.ErrGameFinished.
func (that *Coordinator) Await(mark entity.Mark) (entity.Board, error) {
	if !that.isPlayer(mark) {
		return entity.Board{}, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayer, mark)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for !that.over && that.turn != mark {
		that.cond.Wait()
	}

	if that.over {
		return entity.Board{}, apperror.ErrGameFinished
	}

	return that.board, nil
}

// Submit applies mark's move. A rejected move leaves the board and the turn
// token untouched so the same agent can try again. An applied move either hands
// the turn to the opponent or ends the game; both wake every waiter.
func (that *Coordinator) Submit(mark entity.Mark, cell entity.Cell) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.over {
		return apperror.ErrGameFinished
	}

	if mark != that.turn {
		return fmt.Errorf("%w: %s moves next", apperror.ErrNotYourTurn, that.turn)
	}

	if err := that.board.ApplyMove(mark, cell.Row, cell.Col); err != nil {
		that.rejected++
		return fmt.Errorf("move rejected: %w", err)
	}

	move := Move{Seq: len(that.moves) + 1, Mark: mark, Cell: cell}
	that.moves = append(that.moves, move)

	status := that.board.Status(mark)
	if status.IsTerminal() {
		that.over = true
		that.result = Result{Status: status}
	} else {
		that.turn = mark.Opponent()
	}

	that.publish(Event{Kind: EventMoved, Move: &move, Match: that.snapshot()})
	if that.over {
		that.finish()
	}

	that.cond.Broadcast()

	return nil
}

// Abort ends a match that cannot be played out, for example when an agent
// fails. It has no effect once the game is over.
func (that *Coordinator) Abort(cause error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.over {
		return
	}

	that.over = true
	that.result = Result{
		Status: that.board.Status(that.turn.Opponent()),
		Err:    fmt.Errorf("%w: %w", apperror.ErrMatchAborted, cause),
	}
	that.finish()

	that.cond.Broadcast()
}

// Wait blocks until the game is over and returns its result.
func (that *Coordinator) Wait() Result {
	that.mu.Lock()
	defer that.mu.Unlock()

	for !that.over {
		that.cond.Wait()
	}

	return that.resultLocked()
}

// Result returns the final result, or false while the game is still running.
func (that *Coordinator) Result() (Result, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.over {
		return Result{}, false
	}

	return that.resultLocked(), true
}

func (that *Coordinator) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return State{Turn: that.turn, Over: that.over}
}

// Moves returns the applied moves in the order they were played.
func (that *Coordinator) Moves() []Move {
	that.mu.Lock()
	defer that.mu.Unlock()

	moves := make([]Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

func (that *Coordinator) Snapshot() entity.Match {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// finish publishes EventFinished and closes the stream. Callers hold mu and
// have just set over.
func (that *Coordinator) finish() {
	result := that.resultLocked()
	that.publish(Event{Kind: EventFinished, Match: that.snapshot(), Result: &result})
	close(that.events)
}

func (that *Coordinator) publish(event Event) {
	that.events <- event
}

func (that *Coordinator) resultLocked() Result {
	result := that.result
	result.Moves = len(that.moves)
	result.Rejected = that.rejected

	return result
}

func (that *Coordinator) snapshot() entity.Match {
	match := entity.Match{
		ID:     that.id,
		Board:  that.board.Cells(),
		Turn:   that.turn,
		Status: entity.StatusOngoing,
		Moves:  len(that.moves),
	}

	for i := range that.players {
		player := that.players[i]
		match.Players = append(match.Players, &player)
	}

	if !that.over {
		return match
	}

	match.Turn = entity.EmptyCell
	switch {
	case that.result.Err != nil:
		match.Status = entity.StatusAborted
	case that.result.Status.Outcome == entity.Won:
		match.Status = entity.StatusFinished
		match.Winner = that.result.Status.Winner
	default:
		match.Status = entity.StatusFinished
		match.Winner = entity.PlayerTie
	}

	return match
}

func (that *Coordinator) isPlayer(mark entity.Mark) bool {
	return mark == that.players[0].Mark || mark == that.players[1].Mark
}
