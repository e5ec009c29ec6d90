// Package storagetest holds a behaviour suite every storage backend must pass.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
)

// Suite runs the shared storage contract against the backend built by Factory
type Suite struct {
	suite.Suite
	Factory func(t *testing.T) storage.Storage

	Storage storage.Storage
	Ctx     context.Context
	Now     time.Time
}

func (s *Suite) SetupTest() {
	s.Storage = s.Factory(s.T())
	s.Ctx = context.Background()
	s.Now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

func (s *Suite) saveTournament(id model.TournamentID, code string, created time.Time) *model.Tournament {
	t := &model.Tournament{
		ID:        id,
		Code:      code,
		Name:      "Open " + string(id),
		Format:    model.FormatBestOf5,
		CreatedAt: created,
		UpdatedAt: created,
	}
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, t))
	return t
}

// Tournament tests

func (s *Suite) TestSaveAndGetTournament() {
	s.saveTournament("t1", "ABC123", s.Now)

	got, err := s.Storage.GetTournament(s.Ctx, "t1")
	s.Require().NoError(err)
	s.Equal("Open t1", got.Name)
	s.Equal("ABC123", got.Code)
	s.Equal(model.FormatBestOf5, got.Format)
	s.True(s.Now.Equal(got.CreatedAt))
}

func (s *Suite) TestGetTournamentNotFound() {
	_, err := s.Storage.GetTournament(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

func (s *Suite) TestListTournamentsOldestFirst() {
	s.saveTournament("t2", "BBBBBB", s.Now.Add(time.Hour))
	s.saveTournament("t1", "AAAAAA", s.Now)

	list, err := s.Storage.ListTournaments(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(model.TournamentID("t1"), list[0].ID)
	s.Equal(model.TournamentID("t2"), list[1].ID)
}

func (s *Suite) TestTournamentCodeExists() {
	s.saveTournament("t1", "ABC123", s.Now)

	exists, err := s.Storage.TournamentCodeExists(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.Storage.TournamentCodeExists(s.Ctx, "ZZZZZZ")
	s.Require().NoError(err)
	s.False(exists)
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	p := &model.Player{ID: "p1", TournamentID: "t1", Name: "Alice", Club: "Spin", Seed: model.SeedPtr(3), CreatedAt: s.Now}
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))

	got, err := s.Storage.GetPlayer(s.Ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.Equal("Spin", got.Club)
	s.Require().NotNil(got.Seed)
	s.Equal(3, *got.Seed)

	p.Name = "Changed"
	got, err = s.Storage.GetPlayer(s.Ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
}

func (s *Suite) TestUnseededPlayerRoundTrips() {
	p := &model.Player{ID: "p1", TournamentID: "t1", Name: "Bob", CreatedAt: s.Now}
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))

	got, err := s.Storage.GetPlayer(s.Ctx, "p1")
	s.Require().NoError(err)
	s.Nil(got.Seed)
	s.False(got.HasSeed())
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestGetPlayersForTournament() {
	for i, id := range []model.PlayerID{"p3", "p1", "p2"} {
		s.Require().NoError(s.Storage.SavePlayer(s.Ctx, &model.Player{
			ID: id, TournamentID: "t1", Name: string(id), CreatedAt: s.Now.Add(time.Duration(i) * time.Second),
		}))
	}
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, &model.Player{ID: "other", TournamentID: "t2", CreatedAt: s.Now}))

	players, err := s.Storage.GetPlayersForTournament(s.Ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p3"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[2].ID)

	none, err := s.Storage.GetPlayersForTournament(s.Ctx, "t9")
	s.Require().NoError(err)
	s.Empty(none)
}

// Stage tests

func (s *Suite) TestSaveAndGetStage() {
	stage := &model.Stage{
		ID:           "s1",
		TournamentID: "t1",
		Kind:         model.StageKindRoundRobin,
		Status:       model.StageStatusInProgress,
		Config: model.StageConfig{
			NumberOfGroups: 2,
			AdvanceCount:   2,
			MatchFormat:    model.FormatBestOf3,
			AllowBestThird: true,
			BestThirdCount: 1,
		},
		CreatedAt: s.Now,
		UpdatedAt: s.Now,
	}
	s.Require().NoError(s.Storage.SaveStage(s.Ctx, stage))

	got, err := s.Storage.GetStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Equal(stage.Config, got.Config)
	s.Equal(model.StageKindRoundRobin, got.Kind)

	stage.Status = model.StageStatusClosed
	s.Require().NoError(s.Storage.SaveStage(s.Ctx, stage))
	got, err = s.Storage.GetStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Equal(model.StageStatusClosed, got.Status)
}

func (s *Suite) TestGetStageNotFound() {
	_, err := s.Storage.GetStage(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrStageNotFound)
}

func (s *Suite) TestGetStagesForTournament() {
	s.Require().NoError(s.Storage.SaveStage(s.Ctx, &model.Stage{ID: "ko", TournamentID: "t1", Kind: model.StageKindKnockout, CreatedAt: s.Now.Add(time.Minute)}))
	s.Require().NoError(s.Storage.SaveStage(s.Ctx, &model.Stage{ID: "rr", TournamentID: "t1", Kind: model.StageKindRoundRobin, CreatedAt: s.Now}))

	stages, err := s.Storage.GetStagesForTournament(s.Ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(stages, 2)
	s.Equal(model.StageID("rr"), stages[0].ID)
	s.Equal(model.StageID("ko"), stages[1].ID)
}

// Group tests

func (s *Suite) TestSaveGroupsReplaces() {
	first := []*model.Group{
		{ID: "g2", StageID: "s1", Number: 2, Name: "Group B", PlayerIDs: []model.PlayerID{"c", "d"}},
		{ID: "g1", StageID: "s1", Number: 1, Name: "Group A", PlayerIDs: []model.PlayerID{"a", "b"}},
	}
	s.Require().NoError(s.Storage.SaveGroups(s.Ctx, "s1", first))

	groups, err := s.Storage.GetGroupsForStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal("Group A", groups[0].Name)
	s.Equal([]model.PlayerID{"a", "b"}, groups[0].PlayerIDs)

	second := []*model.Group{{ID: "g9", StageID: "s1", Number: 1, Name: "Group A", PlayerIDs: []model.PlayerID{"x", "y"}}}
	s.Require().NoError(s.Storage.SaveGroups(s.Ctx, "s1", second))

	groups, err = s.Storage.GetGroupsForStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(groups, 1)
	s.Equal(model.GroupID("g9"), groups[0].ID)
}

func (s *Suite) TestGetGroupsForUnknownStage() {
	groups, err := s.Storage.GetGroupsForStage(s.Ctx, "missing")
	s.Require().NoError(err)
	s.Empty(groups)
}

// Match tests

func (s *Suite) TestSaveAndGetMatch() {
	m := &model.Match{
		ID:           "m1",
		TournamentID: "t1",
		StageID:      "s1",
		GroupID:      "g1",
		Round:        1,
		MatchNumber:  4,
		Player1ID:    "a",
		Player2ID:    "b",
		Games:        []model.Game{model.NewGame(1, 11, 7), {Number: 2}},
		Status:       model.MatchStatusLive,
		Player1Games: 1,
		NextMatchID:  "m9",
		NextSlot:     2,
		UpdatedAt:    s.Now,
	}
	s.Require().NoError(s.Storage.SaveMatch(s.Ctx, m))

	got, err := s.Storage.GetMatch(s.Ctx, "m1")
	s.Require().NoError(err)
	s.Equal(model.GroupID("g1"), got.GroupID)
	s.Equal(4, got.MatchNumber)
	s.Equal(model.MatchStatusLive, got.Status)
	s.Equal(model.MatchID("m9"), got.NextMatchID)
	s.Equal(2, got.NextSlot)
	s.Require().Len(got.Games, 2)
	s.Equal(11, *got.Games[0].Score1)
	s.Equal(7, *got.Games[0].Score2)
	s.Nil(got.Games[1].Score1)
}

func (s *Suite) TestGetMatchNotFound() {
	_, err := s.Storage.GetMatch(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *Suite) TestMatchesForStageOrdered() {
	matches := []*model.Match{
		{ID: "r2", StageID: "s1", Round: 2, Position: 0},
		{ID: "r1b", StageID: "s1", Round: 1, Position: 1},
		{ID: "r1a", StageID: "s1", Round: 1, Position: 0},
		{ID: "other", StageID: "s2", Round: 1},
	}
	s.Require().NoError(s.Storage.SaveMatches(s.Ctx, matches))

	got, err := s.Storage.GetMatchesForStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(model.MatchID("r1a"), got[0].ID)
	s.Equal(model.MatchID("r1b"), got[1].ID)
	s.Equal(model.MatchID("r2"), got[2].ID)
}

func (s *Suite) TestDeleteMatchesForStage() {
	s.Require().NoError(s.Storage.SaveMatches(s.Ctx, []*model.Match{
		{ID: "a", StageID: "s1", Round: 1},
		{ID: "b", StageID: "s1", Round: 1, Position: 1},
		{ID: "c", StageID: "s2", Round: 1},
	}))

	s.Require().NoError(s.Storage.DeleteMatchesForStage(s.Ctx, "s1"))

	got, err := s.Storage.GetMatchesForStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Empty(got)
	_, err = s.Storage.GetMatch(s.Ctx, "a")
	s.ErrorIs(err, model.ErrMatchNotFound)

	kept, err := s.Storage.GetMatch(s.Ctx, "c")
	s.Require().NoError(err)
	s.Equal(model.StageID("s2"), kept.StageID)
}

func (s *Suite) TestSaveMatchOverwrites() {
	m := &model.Match{ID: "m1", StageID: "s1", Round: 1, Status: model.MatchStatusPending}
	s.Require().NoError(s.Storage.SaveMatch(s.Ctx, m))

	m.Status = model.MatchStatusComplete
	m.WinnerID = "a"
	s.Require().NoError(s.Storage.SaveMatch(s.Ctx, m))

	got, err := s.Storage.GetMatchesForStage(s.Ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(model.MatchStatusComplete, got[0].Status)
	s.Equal(model.PlayerID("a"), got[0].WinnerID)
}
