package roundrobin

import (
	"fmt"
	"testing"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/stretchr/testify/suite"
)

type ScheduleSuite struct {
	suite.Suite
}

func TestScheduleSuite(t *testing.T) {
	suite.Run(t, new(ScheduleSuite))
}

func playerIDs(n int) []model.PlayerID {
	ids := make([]model.PlayerID, n)
	for i := range ids {
		ids[i] = model.PlayerID(fmt.Sprintf("p%02d", i+1))
	}
	return ids
}

func countByes(fixtures []Fixture) int {
	count := 0
	for _, f := range fixtures {
		if f.IsBye {
			count++
		}
	}
	return count
}

func (s *ScheduleSuite) TestFourPlayers() {
	fixtures, err := GenerateGroupSchedule(playerIDs(4))
	s.Require().NoError(err)

	s.Len(fixtures, 6)
	s.Equal(0, countByes(fixtures))
	perRound := map[int]int{}
	for _, f := range fixtures {
		perRound[f.Round]++
	}
	s.Equal(map[int]int{1: 2, 2: 2, 3: 2}, perRound)
}

func (s *ScheduleSuite) TestFourPlayersCircleOrder() {
	fixtures, err := GenerateGroupSchedule([]model.PlayerID{"a", "b", "c", "d"})
	s.Require().NoError(err)

	pairs := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		pairs = append(pairs, string(f.Player1ID)+string(f.Player2ID))
	}
	s.Equal([]string{"ad", "bc", "ac", "db", "ab", "cd"}, pairs)
}

func (s *ScheduleSuite) TestFivePlayersOneByePerRound() {
	fixtures, err := GenerateGroupSchedule(playerIDs(5))
	s.Require().NoError(err)

	byesPerRound := map[int]int{}
	rounds := map[int]bool{}
	for _, f := range fixtures {
		rounds[f.Round] = true
		if f.IsBye {
			byesPerRound[f.Round]++
			s.Equal(ByeID, f.Player2ID)
			s.NotEqual(ByeID, f.Player1ID)
		}
	}
	s.Len(rounds, 5)
	for round := 1; round <= 5; round++ {
		s.Equal(1, byesPerRound[round], "round %d", round)
	}
	s.Equal(10, len(fixtures)-countByes(fixtures))
}

func (s *ScheduleSuite) TestEveryGroupSizeIsComplete() {
	for n := MinGroupSize; n <= MaxGroupSize; n++ {
		ids := playerIDs(n)
		fixtures, err := GenerateGroupSchedule(ids)
		s.Require().NoError(err, "n=%d", n)

		s.Equal(n*(n-1)/2, len(fixtures)-countByes(fixtures), "n=%d", n)
		result := VerifySchedule(ids, fixtures)
		s.True(result.Valid, "n=%d: %s", n, result.Reason)
	}
}

func (s *ScheduleSuite) TestGroupSizeLimits() {
	_, err := GenerateGroupSchedule(playerIDs(1))
	s.ErrorIs(err, model.ErrGroupTooSmall)

	_, err = GenerateGroupSchedule(playerIDs(33))
	s.ErrorIs(err, model.ErrGroupTooLarge)
}

func (s *ScheduleSuite) TestDuplicatePlayerRejected() {
	_, err := GenerateGroupSchedule([]model.PlayerID{"a", "b", "a"})
	s.ErrorIs(err, model.ErrDuplicatePlayer)
}

func (s *ScheduleSuite) TestMultiGroupNumbering() {
	groups := []model.Group{
		{ID: "gb", Number: 2, Name: "Group B", PlayerIDs: []model.PlayerID{"x", "y", "z"}},
		{ID: "ga", Number: 1, Name: "Group A", PlayerIDs: []model.PlayerID{"a", "b", "c", "d"}},
	}

	fixtures, err := GenerateMultiGroupSchedule(groups, 10)
	s.Require().NoError(err)

	var numbers []int
	lastRound := 0
	for _, f := range fixtures {
		s.GreaterOrEqual(f.Round, lastRound)
		lastRound = f.Round
		if f.IsBye {
			s.Equal(0, f.MatchNumber)
			continue
		}
		numbers = append(numbers, f.MatchNumber)
	}
	s.Equal([]int{11, 12, 13, 14, 15, 16, 17, 18, 19}, numbers)

	// Group A fixtures come first within each matchday
	s.Equal(model.GroupID("ga"), fixtures[0].GroupID)
	s.Equal(11, fixtures[0].MatchNumber)
}

func (s *ScheduleSuite) TestMultiGroupReportsFailingGroup() {
	groups := []model.Group{
		{ID: "ga", Number: 1, Name: "Group A", PlayerIDs: []model.PlayerID{"a"}},
	}

	_, err := GenerateMultiGroupSchedule(groups, 0)
	s.ErrorIs(err, model.ErrGroupTooSmall)
	s.Contains(err.Error(), "Group A")
}

func (s *ScheduleSuite) TestVerifyDetectsMissingPair() {
	ids := playerIDs(4)
	fixtures, err := GenerateGroupSchedule(ids)
	s.Require().NoError(err)

	result := VerifySchedule(ids, fixtures[:5])
	s.False(result.Valid)
	s.Contains(result.Reason, "expected 6")
}

func (s *ScheduleSuite) TestVerifyDetectsDuplicatePair() {
	ids := []model.PlayerID{"a", "b", "c"}
	fixtures := []Fixture{
		{Round: 1, Player1ID: "a", Player2ID: "b"},
		{Round: 2, Player1ID: "b", Player2ID: "a"},
		{Round: 3, Player1ID: "b", Player2ID: "c"},
	}

	result := VerifySchedule(ids, fixtures)
	s.False(result.Valid)
	s.Contains(result.Reason, "duplicate")
}

func (s *ScheduleSuite) TestVerifyDetectsDoubleBooking() {
	ids := []model.PlayerID{"a", "b", "c", "d"}
	fixtures := []Fixture{
		{Round: 1, Player1ID: "a", Player2ID: "b"},
		{Round: 1, Player1ID: "a", Player2ID: "c"},
	}

	result := VerifySchedule(ids, fixtures)
	s.False(result.Valid)
	s.Contains(result.Reason, "appears twice")
}
