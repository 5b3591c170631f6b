package entity

type Outcome int

const (
	InProgress Outcome = iota
	Won
	Drawn
)

func (that Outcome) String() string {
	switch that {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// GameStatus is derived from a Board on demand. Winner is set only when Outcome is Won.
type GameStatus struct {
	Outcome Outcome
	Winner  Mark
}

func (that GameStatus) IsTerminal() bool {
	return that.Outcome == Won || that.Outcome == Drawn
}

func (that GameStatus) String() string {
	if that.Outcome == Won {
		return "won by " + string(that.Winner)
	}

	return that.Outcome.String()
}
