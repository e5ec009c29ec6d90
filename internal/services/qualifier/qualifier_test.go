package qualifier

import (
	"fmt"
	"testing"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/stretchr/testify/suite"
)

type QualifierSuite struct {
	suite.Suite
}

func TestQualifierSuite(t *testing.T) {
	suite.Run(t, new(QualifierSuite))
}

// makeGroups builds numGroups groups of size players each, ranked in order.
// Lower ranks get fewer wins so cross-group comparisons are predictable.
func makeGroups(numGroups, size int) []GroupStandings {
	groups := make([]GroupStandings, 0, numGroups)
	for g := 1; g <= numGroups; g++ {
		group := model.Group{ID: model.GroupID(fmt.Sprintf("g%d", g)), Number: g}
		var table []model.PlayerStanding
		for r := 1; r <= size; r++ {
			id := model.PlayerID(fmt.Sprintf("g%d-r%d", g, r))
			group.PlayerIDs = append(group.PlayerIDs, id)
			table = append(table, model.PlayerStanding{
				PlayerID: id,
				GroupID:  group.ID,
				Rank:     r,
				Wins:     size - r,
			})
		}
		groups = append(groups, GroupStandings{Group: group, Standings: table})
	}
	return groups
}

func config(advance int) model.StageConfig {
	cfg := model.DefaultStageConfig()
	cfg.AdvanceCount = advance
	return cfg
}

func ids(qualifiers []Qualifier) []model.PlayerID {
	result := make([]model.PlayerID, len(qualifiers))
	for i, q := range qualifiers {
		result[i] = q.PlayerID
	}
	return result
}

func (s *QualifierSuite) TestSnakeOrder() {
	groups := makeGroups(3, 4)
	// Reverse the input to prove group number drives the order
	groups[0], groups[2] = groups[2], groups[0]

	qualifiers := BuildQualifiers(groups, config(2))

	s.Equal([]model.PlayerID{"g1-r1", "g2-r1", "g3-r1", "g1-r2", "g2-r2", "g3-r2"}, ids(qualifiers))
	for i, q := range qualifiers {
		s.Equal(i+1, q.KOSeed)
		s.False(q.BestPlaced)
	}
	s.Equal(2, qualifiers[3].GroupRank)
	s.Equal(1, qualifiers[3].GroupNumber)
}

func (s *QualifierSuite) TestBestThirdSelection() {
	groups := makeGroups(3, 4)
	// Make group 2's third the strongest, group 3's third second on game difference
	groups[1].Standings[2].Wins = 2
	groups[2].Standings[2].GameDifference = 3

	cfg := config(2)
	cfg.AllowBestThird = true
	cfg.BestThirdCount = 2
	qualifiers := BuildQualifiers(groups, cfg)

	s.Require().Len(qualifiers, 8)
	s.Equal(model.PlayerID("g2-r3"), qualifiers[6].PlayerID)
	s.Equal(model.PlayerID("g3-r3"), qualifiers[7].PlayerID)
	s.True(qualifiers[6].BestPlaced)
	s.Equal(8, qualifiers[7].KOSeed)
}

func (s *QualifierSuite) TestBestThirdFallsBackToPlayerID() {
	groups := makeGroups(2, 3)

	cfg := config(2)
	cfg.AllowBestThird = true
	cfg.BestThirdCount = 1
	qualifiers := BuildQualifiers(groups, cfg)

	s.Require().Len(qualifiers, 5)
	s.Equal(model.PlayerID("g1-r3"), qualifiers[4].PlayerID)
}

func (s *QualifierSuite) TestSmallGroupsSkipMissingRanks() {
	groups := makeGroups(2, 3)
	groups[1].Standings = groups[1].Standings[:1]

	qualifiers := BuildQualifiers(groups, config(2))

	s.Equal([]model.PlayerID{"g1-r1", "g2-r1", "g1-r2"}, ids(qualifiers))
}

func (s *QualifierSuite) TestRepairThreeGroups() {
	qualifiers := BuildQualifiers(makeGroups(3, 4), config(2))
	s.Require().Equal(1, CountSameGroupClashes(qualifiers))

	repaired, warnings := AvoidSameGroupClashes(qualifiers)

	s.Empty(warnings)
	s.Equal(0, CountSameGroupClashes(repaired))
	// The group 3 runner up swaps with seed 4
	s.Equal(model.PlayerID("g3-r2"), repaired[3].PlayerID)
	s.Equal(model.PlayerID("g1-r2"), repaired[5].PlayerID)
	for i, q := range repaired {
		s.Equal(i+1, q.KOSeed)
	}
}

func (s *QualifierSuite) TestRepairRemovesClashesForBalancedGroups() {
	for numGroups := 3; numGroups <= 8; numGroups++ {
		for advance := 1; advance <= 4; advance++ {
			qualifiers := BuildQualifiers(makeGroups(numGroups, 5), config(advance))
			repaired, warnings := AvoidSameGroupClashes(qualifiers)

			s.Equal(0, CountSameGroupClashes(repaired), "groups=%d advance=%d", numGroups, advance)
			s.Empty(warnings, "groups=%d advance=%d", numGroups, advance)
			s.ElementsMatch(ids(qualifiers), ids(repaired))
		}
	}
}

func (s *QualifierSuite) TestRepairNeverIncreasesClashes() {
	for numGroups := 1; numGroups <= 8; numGroups++ {
		for advance := 1; advance <= 4; advance++ {
			for _, best := range []int{0, 1, 2, 3, 4} {
				cfg := config(advance)
				if best > 0 {
					cfg.AllowBestThird = true
					cfg.BestThirdCount = best
				}
				qualifiers := BuildQualifiers(makeGroups(numGroups, 6), cfg)
				before := CountSameGroupClashes(qualifiers)

				repaired, warnings := AvoidSameGroupClashes(qualifiers)

				after := CountSameGroupClashes(repaired)
				s.LessOrEqual(after, before, "groups=%d advance=%d best=%d", numGroups, advance, best)
				s.LessOrEqual(after, len(warnings), "groups=%d advance=%d best=%d", numGroups, advance, best)
			}
		}
	}
}

func (s *QualifierSuite) TestSingleGroupWarns() {
	qualifiers := BuildQualifiers(makeGroups(1, 4), config(4))

	repaired, warnings := AvoidSameGroupClashes(qualifiers)

	s.Equal(2, CountSameGroupClashes(repaired))
	s.Len(warnings, 2)
	s.Equal(model.GroupID("g1"), warnings[0].GroupID)
	s.Contains(warnings[0].String(), "g1")
}

func (s *QualifierSuite) TestTinyInputs() {
	repaired, warnings := AvoidSameGroupClashes(nil)
	s.Empty(repaired)
	s.Empty(warnings)

	one := []Qualifier{{PlayerID: "a", KOSeed: 1}}
	repaired, _ = AvoidSameGroupClashes(one)
	s.Len(repaired, 1)
	s.Equal(0, CountSameGroupClashes(one))
}

func (s *QualifierSuite) TestRankingFollowsKOSeed() {
	qualifiers := []Qualifier{
		{PlayerID: "b", KOSeed: 2},
		{PlayerID: "a", KOSeed: 1},
	}
	s.Equal([]model.PlayerID{"a", "b"}, Ranking(qualifiers))
}
