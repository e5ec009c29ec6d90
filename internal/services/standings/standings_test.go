package standings

import (
	"testing"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
	"github.com/stretchr/testify/suite"
)

type StandingsSuite struct {
	suite.Suite
	group   model.Group
	players []model.Player
	matches []model.Match
}

func TestStandingsSuite(t *testing.T) {
	suite.Run(t, new(StandingsSuite))
}

func (s *StandingsSuite) SetupTest() {
	s.group = model.Group{ID: "g1", Number: 1, Name: "Group A"}
	s.players = nil
	s.matches = nil
}

func (s *StandingsSuite) addPlayers(ids ...model.PlayerID) {
	for _, id := range ids {
		s.group.PlayerIDs = append(s.group.PlayerIDs, id)
		s.players = append(s.players, model.Player{ID: id, Name: "Player " + string(id)})
	}
}

// play records a completed best-of-five. Each score pair is one game.
func (s *StandingsSuite) play(round int, p1, p2 model.PlayerID, scores ...[2]int) {
	m := model.Match{
		ID:        model.MatchID(string(p1) + "-" + string(p2)),
		GroupID:   s.group.ID,
		Round:     round,
		Player1ID: p1,
		Player2ID: p2,
	}
	for i, sc := range scores {
		m.Games = append(m.Games, model.NewGame(i+1, sc[0], sc[1]))
	}
	scoring.Apply(&m, model.FormatBestOf5)
	s.matches = append(s.matches, m)
}

var (
	w  = [2]int{11, 5}
	l  = [2]int{5, 11}
	w9 = [2]int{11, 9}
	wd = [2]int{12, 10}
)

// beats is a 3-0 win for the first player
func (s *StandingsSuite) beats(round int, p1, p2 model.PlayerID) {
	s.play(round, p1, p2, w, w, w)
}

// edges is a 3-2 win for the first player
func (s *StandingsSuite) edges(round int, p1, p2 model.PlayerID) {
	s.play(round, p1, p2, w, l, w, l, w)
}

func order(table []model.PlayerStanding) []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(table))
	for _, row := range table {
		ids = append(ids, row.PlayerID)
	}
	return ids
}

func (s *StandingsSuite) compute(advance int) []model.PlayerStanding {
	return ComputeGroupStandings(s.group, s.players, s.matches, advance)
}

func (s *StandingsSuite) TestGamesAfterDecidingGameScoreNoPoints() {
	s.addPlayers("a", "b")
	z := [2]int{11, 0}
	s.play(1, "a", "b", z, z, z, z)

	table := s.compute(1)

	s.Require().Equal([]model.PlayerID{"a", "b"}, order(table))
	s.Equal(3, table[0].GamesWon)
	s.Equal(33, table[0].PointsScored)
	s.Equal(0, table[0].PointsConceded)
	s.Equal(33, table[1].PointsConceded)
}

func (s *StandingsSuite) TestIdlePlayersFallBackToID() {
	s.addPlayers("bbb", "aaa")

	table := s.compute(1)

	s.Equal([]model.PlayerID{"aaa", "bbb"}, order(table))
	s.Equal(1, table[0].Rank)
	s.True(table[0].Advances)
	s.False(table[1].Advances)
	s.Equal(0, table[1].MatchesPlayed)
	s.Equal("Player aaa", table[0].Name)
}

func (s *StandingsSuite) TestAccumulatesStats() {
	s.addPlayers("a", "b", "c")
	s.beats(1, "a", "b")
	s.play(2, "c", "a", l, w, l, l)
	s.edges(3, "b", "c")

	table := s.compute(2)

	s.Equal([]model.PlayerID{"a", "b", "c"}, order(table))
	a := table[0]
	s.Equal(2, a.MatchesPlayed)
	s.Equal(2, a.Wins)
	s.Equal(0, a.Losses)
	s.Equal(6, a.GamesWon)
	s.Equal(1, a.GamesLost)
	s.Equal(5, a.GameDifference)
	s.Equal(33+38, a.PointsScored)
	s.Equal(15+26, a.PointsConceded)
	s.Equal(a.PointsScored-a.PointsConceded, a.PointsDifference)
	s.True(table[1].Advances)
	s.False(table[2].Advances)
}

func (s *StandingsSuite) TestTwoWayTieUsesHeadToHead() {
	s.addPlayers("a", "b", "c", "d")
	s.edges(1, "b", "c")
	s.beats(1, "c", "a")
	s.beats(2, "c", "d")
	s.edges(2, "b", "d")
	s.beats(3, "a", "b")
	s.edges(3, "d", "a")

	table := s.compute(2)

	// c has the better game record but lost to b; the same holds for a against d
	s.Equal([]model.PlayerID{"b", "c", "d", "a"}, order(table))
	s.Greater(table[1].GamesWon, table[0].GamesWon)

	reasons := ExplainStandings(table, s.matches)
	s.Require().Len(reasons, 3)
	s.Equal(RuleHeadToHead, reasons[0].Rule)
	s.Equal(RuleWins, reasons[1].Rule)
	s.Equal(RuleHeadToHead, reasons[2].Rule)
}

func (s *StandingsSuite) TestThreeWayTieIgnoresHeadToHead() {
	s.addPlayers("a", "b", "c")
	s.beats(1, "a", "b")
	s.beats(2, "b", "c")
	s.edges(3, "c", "a")

	table := s.compute(1)

	// c beat a but a's game difference is better; pairwise results are not used
	s.Equal([]model.PlayerID{"a", "b", "c"}, order(table))
	s.Equal(2, table[0].GameDifference)
	s.Equal(0, table[1].GameDifference)
	s.Equal(-2, table[2].GameDifference)

	reasons := ExplainStandings(table, s.matches)
	s.Equal(RuleGamesWon, reasons[0].Rule)
	s.Equal(RuleGamesLost, reasons[1].Rule)
}

func (s *StandingsSuite) TestPointsBreakTiesWithoutHeadToHead() {
	s.addPlayers("a", "b", "c", "d")
	s.beats(1, "a", "c")
	s.play(1, "b", "d", wd, wd, wd)

	table := s.compute(2)

	s.Equal([]model.PlayerID{"b", "a", "d", "c"}, order(table))
	s.Equal(RulePointsScored, GetTiebreakerReason(table[0], table[1], s.matches).Rule)
	s.Equal(RulePointsScored, GetTiebreakerReason(table[2], table[3], s.matches).Rule)
}

func (s *StandingsSuite) TestPointsConcededBreaksTie() {
	s.addPlayers("a", "b", "c", "d")
	s.play(1, "a", "c", w, w, w9)
	s.play(1, "b", "d", w, w, [2]int{11, 1})

	table := s.compute(2)

	s.Equal(model.PlayerID("b"), table[0].PlayerID)
	s.Equal(RulePointsConceded, GetTiebreakerReason(table[0], table[1], s.matches).Rule)
}

func (s *StandingsSuite) TestIgnoresUnfinishedAndByeMatches() {
	s.addPlayers("a", "b", "c")
	s.play(1, "a", "b", w, w)
	s.matches = append(s.matches, model.Match{
		GroupID:   s.group.ID,
		Player1ID: "c",
		Status:    model.MatchStatusBye,
		IsBye:     true,
		WinnerID:  "c",
	})

	table := s.compute(1)

	for _, row := range table {
		s.Equal(0, row.MatchesPlayed)
		s.Equal(0, row.PointsScored)
	}
}

func (s *StandingsSuite) TestRankingIsTotalOrder() {
	s.addPlayers("d", "c", "b", "a")

	table := s.compute(0)

	for i, row := range table {
		s.Equal(i+1, row.Rank)
		s.False(row.Advances)
	}
	s.Equal(RulePlayerID, GetTiebreakerReason(table[0], table[1], nil).Rule)
}

func (s *StandingsSuite) TestComputeAllPartitionsByGroup() {
	s.addPlayers("a", "b")
	s.beats(1, "b", "a")
	other := model.Group{ID: "g2", Number: 2, PlayerIDs: []model.PlayerID{"x", "y"}}
	s.matches = append(s.matches, model.Match{
		GroupID: "g2", Player1ID: "x", Player2ID: "y",
		Status: model.MatchStatusComplete, WinnerID: "y", Player2Games: 3,
	})

	all := ComputeAllGroupStandings([]model.Group{s.group, other}, s.players, s.matches, 1)

	s.Require().Len(all, 2)
	s.Equal([]model.PlayerID{"b", "a"}, order(all["g1"]))
	s.Equal([]model.PlayerID{"y", "x"}, order(all["g2"]))
	s.Equal(1, all["g2"][0].Wins)
}

func (s *StandingsSuite) TestGroupProgress() {
	s.Equal(Progress{}, GroupProgress(nil))

	s.addPlayers("a", "b", "c")
	s.beats(1, "a", "b")
	s.matches = append(s.matches,
		model.Match{Player1ID: "c", IsBye: true, Status: model.MatchStatusBye},
		model.Match{Player1ID: "b", Player2ID: "c", Status: model.MatchStatusLive},
	)

	p := GroupProgress(s.matches)
	s.Equal(1, p.Completed)
	s.Equal(2, p.Total)
	s.False(p.AllDone)

	p = GroupProgress(s.matches[:2])
	s.True(p.AllDone)
}
