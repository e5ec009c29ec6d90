package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		Factory: func(t *testing.T) storage.Storage { return New() },
	})
}

func TestMatchesAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	m := &model.Match{ID: "m1", StageID: "s1", Games: []model.Game{model.NewGame(1, 11, 3)}}
	require.NoError(t, s.SaveMatch(ctx, m))

	*m.Games[0].Score1 = 2

	got, err := s.GetMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 11, *got.Games[0].Score1)

	got.Games[0].Number = 5
	again, err := s.GetMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Games[0].Number)
}

func TestGroupsAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	g := &model.Group{ID: "g1", Number: 1, PlayerIDs: []model.PlayerID{"a", "b"}}
	require.NoError(t, s.SaveGroups(ctx, "s1", []*model.Group{g}))
	g.PlayerIDs[0] = "z"

	groups, err := s.GetGroupsForStage(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.PlayerID("a"), groups[0].PlayerIDs[0])
}
