package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/testing/suite"
)

func newMatch() *entity.Match {
	return &entity.Match{
		ID:     "123",
		Board:  [entity.CellCount]entity.Mark{entity.PlayerX},
		Turn:   entity.PlayerO,
		Status: entity.StatusOngoing,
		Players: []*entity.Player{
			{Name: "random agent", Mark: entity.PlayerX, Strategy: "random"},
			{Name: "sequential agent", Mark: entity.PlayerO, Strategy: "sequential"},
		},
		Moves: 1,
	}
}

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// Given: a stored match
	match := newMatch()
	require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

	// When: the match is stored again after a move
	match.Board[4] = entity.PlayerO
	match.Turn = entity.PlayerX
	match.Moves = 2
	err := matchRepo.CreateOrUpdate(ctx, match)

	// Then: the latest snapshot replaces the previous one
	require.NoError(t, err)

	stored, err := matchRepo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, match, stored)
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match
		match := newMatch()
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

		// When: GetByID is called with its ID
		stored, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the stored snapshot is returned
		require.NoError(t, err)
		assert.Equal(t, match, stored)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// When: GetByID is called with an unknown ID
		stored, err := matchRepo.GetByID(ctx, "9999999")

		// Then: ErrMatchNotFound is returned
		require.ErrorIs(t, err, ErrMatchNotFound)
		assert.Nil(t, stored)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// Given: a stored match
	match := newMatch()
	require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

	// When: the match is deleted
	err := matchRepo.DeleteByID(ctx, match.ID)

	// Then: it can no longer be found
	require.NoError(t, err)

	_, err = matchRepo.GetByID(ctx, match.ID)
	require.ErrorIs(t, err, ErrMatchNotFound)

	// And: deleting a missing match is not an error
	require.NoError(t, matchRepo.DeleteByID(ctx, match.ID))
}
