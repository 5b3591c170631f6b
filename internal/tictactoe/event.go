package tictactoe

import "github.com/rocketscienceinc/tictactoe-duel/internal/entity"

type EventKind int

const (
	EventStarted EventKind = iota + 1
	EventMoved
	EventFinished
)

func (that EventKind) String() string {
	switch that {
	case EventStarted:
		return "started"
	case EventMoved:
		return "moved"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event describes one step of a match. Match is the snapshot taken right after
// the step; Move is set for EventMoved and Result for EventFinished.
type Event struct {
	Kind   EventKind
	Match  entity.Match
	Move   *Move
	Result *Result
}
