package strategy

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

var ErrUnknownKind = errors.New("unknown strategy kind")

// Kind selects a Strategy variant. It is resolved once, in New.
type Kind int

const (
	Sequential Kind = iota + 1
	Random
)

func (that Kind) String() string {
	switch that {
	case Sequential:
		return "sequential"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("kind(%d)", int(that))
	}
}

// BoardView is the read-only part of the board a strategy may consult.
type BoardView interface {
	IsLegal(row, col int) bool
}

// Strategy picks the next cell for one agent. Implementations keep private state
// and are not safe for use by more than one goroutine.
type Strategy interface {
	Kind() Kind
	ChooseMove(board BoardView) (entity.Cell, error)
}

type options struct {
	rng *rand.Rand
}

type Option func(*options)

// WithRand sets the random source of a Random strategy. Sequential ignores it.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

func New(kind Kind, opts ...Option) (Strategy, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	switch kind {
	case Sequential:
		return newSequential(), nil
	case Random:
		rng := o.rng
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
		}
		return newRandom(rng), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}
