package entity

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
	StatusAborted  = "aborted"

	PlayerTie Mark = "-"
)

// Match is a serializable snapshot of a running or finished match.
type Match struct {
	ID      string          `json:"id"`
	Board   [CellCount]Mark `json:"board"`
	Turn    Mark            `json:"player_turn"`
	Winner  Mark            `json:"winner"`
	Status  string          `json:"status"`
	Players []*Player       `json:"players,omitempty"`
	Moves   int             `json:"moves"`
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished || that.Status == StatusAborted
}

func (that *Match) IsDraw() bool {
	return that.Status == StatusFinished && that.Winner == PlayerTie
}

func (that *Match) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}
