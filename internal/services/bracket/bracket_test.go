package bracket

import (
	"fmt"
	"testing"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/mocks"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/random"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/stretchr/testify/suite"
)

type BracketSuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestBracketSuite(t *testing.T) {
	suite.Run(t, new(BracketSuite))
}

func (s *BracketSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

// seeded returns n players seeded 1..n in order
func seeded(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		players[i] = model.Player{
			ID:   model.PlayerID(fmt.Sprintf("p%03d", i+1)),
			Seed: model.SeedPtr(i + 1),
		}
	}
	return players
}

func unseeded(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		players[i] = model.Player{ID: model.PlayerID(fmt.Sprintf("u%03d", i+1))}
	}
	return players
}

func (s *BracketSuite) TestSeedOrder() {
	s.Equal([]int{1}, SeedOrder(1))
	s.Equal([]int{1, 2}, SeedOrder(2))
	s.Equal([]int{1, 4, 2, 3}, SeedOrder(4))
	s.Equal([]int{1, 8, 4, 5, 2, 7, 3, 6}, SeedOrder(8))
}

func (s *BracketSuite) TestNextPowerOfTwo() {
	s.Equal(2, NextPowerOfTwo(2))
	s.Equal(4, NextPowerOfTwo(3))
	s.Equal(32, NextPowerOfTwo(17))
	s.Equal(256, NextPowerOfTwo(256))
}

func (s *BracketSuite) TestSeventeenPlayers() {
	b, err := GenerateBracket(seeded(17), s.random)
	s.Require().NoError(err)

	s.Equal(32, b.BracketSize)
	s.Equal(15, b.ByeCount)
	s.Equal(5, b.TotalRounds)
	s.Len(b.FirstRoundMatches, 16)

	byeSeeds := map[int]bool{}
	var realMatches []FirstRoundMatch
	for _, m := range b.FirstRoundMatches {
		if m.IsBye {
			seed := m.Slot1.Seed
			if m.Slot1.IsBye {
				seed = m.Slot2.Seed
			}
			byeSeeds[seed] = true
			continue
		}
		realMatches = append(realMatches, m)
	}

	for seed := 1; seed <= 15; seed++ {
		s.True(byeSeeds[seed], "seed %d should have a bye", seed)
	}
	s.Require().Len(realMatches, 1)
	s.ElementsMatch([]int{16, 17}, []int{realMatches[0].Slot1.Seed, realMatches[0].Slot2.Seed})
}

func (s *BracketSuite) TestEveryFieldSize() {
	for n := MinPlayers; n <= MaxPlayers; n++ {
		b, err := GenerateBracket(unseeded(n), random.NewSeeded(uint64(n)))
		s.Require().NoError(err, "n=%d", n)

		size := NextPowerOfTwo(n)
		s.Equal(size, b.BracketSize, "n=%d", n)
		s.Equal(size-n, b.ByeCount, "n=%d", n)

		byes := 0
		placed := map[model.PlayerID]bool{}
		for _, m := range b.FirstRoundMatches {
			if !m.IsBye {
				continue
			}
			byes++
			s.LessOrEqual(m.Slot1.Seed, b.ByeCount, "n=%d: bye given to seed %d", n, m.Slot1.Seed)
			s.False(m.Slot1.IsBye && m.Slot2.IsBye, "n=%d", n)
		}
		for _, slot := range b.Slots {
			if !slot.IsBye {
				s.False(placed[slot.PlayerID], "n=%d: %s placed twice", n, slot.PlayerID)
				placed[slot.PlayerID] = true
			}
		}
		s.Equal(size-n, byes, "n=%d", n)
		s.Len(placed, n, "n=%d", n)
	}
}

func (s *BracketSuite) TestTopSeedsMeetLate() {
	b, err := GenerateBracket(seeded(8), s.random)
	s.Require().NoError(err)

	// 1 and 2 sit in opposite halves
	half := b.BracketSize / 2
	pos := map[int]int{}
	for _, slot := range b.Slots {
		pos[slot.Seed] = slot.Position
	}
	s.Less(pos[1], half)
	s.GreaterOrEqual(pos[2], half)
	s.Equal(model.PlayerID("p001"), b.Ranking[0])
}

func (s *BracketSuite) TestExplicitSeedsHoldTheirRank() {
	players := append(unseeded(5), model.Player{ID: "top", Seed: model.SeedPtr(1)}, model.Player{ID: "third", Seed: model.SeedPtr(3)})

	ranking := RankPlayers(players, random.NewSeeded(11))

	s.Len(ranking, 7)
	s.Equal(model.PlayerID("top"), ranking[0])
	s.Equal(model.PlayerID("third"), ranking[2])
}

func (s *BracketSuite) TestDuplicateAndOutOfRangeSeedsOverflow() {
	players := []model.Player{
		{ID: "a", Seed: model.SeedPtr(1)},
		{ID: "b", Seed: model.SeedPtr(1)},
		{ID: "c", Seed: model.SeedPtr(40)},
		{ID: "d"},
	}

	ranking := RankPlayers(players, s.random)

	s.Equal([]model.PlayerID{"a", "b", "c", "d"}, ranking)
}

func (s *BracketSuite) TestSameSeedSameDraw() {
	first, err := GenerateBracket(unseeded(12), random.NewSeeded(5))
	s.Require().NoError(err)
	second, err := GenerateBracket(unseeded(12), random.NewSeeded(5))
	s.Require().NoError(err)

	s.Equal(first.Ranking, second.Ranking)
}

func (s *BracketSuite) TestShuffleUsesRandomSource() {
	s.random.QueueDrawOrder(2, 1, 0)

	ranking := RankPlayers(unseeded(3), s.random)

	s.Equal([]model.PlayerID{"u003", "u002", "u001"}, ranking)
}

func (s *BracketSuite) TestFieldLimits() {
	_, err := GenerateBracket(seeded(1), s.random)
	s.ErrorIs(err, model.ErrTooFewPlayers)

	_, err = GenerateBracket(unseeded(257), s.random)
	s.ErrorIs(err, model.ErrTooManyPlayers)

	_, err = GenerateBracket([]model.Player{{ID: "a"}, {ID: "a"}}, s.random)
	s.ErrorIs(err, model.ErrDuplicatePlayer)
}

func (s *BracketSuite) TestFirstRoundWiring() {
	b, err := GenerateBracket(seeded(8), s.random)
	s.Require().NoError(err)

	for _, m := range b.FirstRoundMatches {
		s.Equal(m.Index/2, m.NextMatchIndex)
		s.Equal(m.Index%2+1, m.NextSlot)
	}

	final, err := GenerateBracket(seeded(2), s.random)
	s.Require().NoError(err)
	s.Equal(-1, final.FirstRoundMatches[0].NextMatchIndex)
	s.Equal(1, final.TotalRounds)
}

func (s *BracketSuite) TestBuildRounds() {
	b, err := GenerateBracket(seeded(6), s.random)
	s.Require().NoError(err)

	rounds := BuildRounds(b)

	s.Len(rounds, 7)
	s.Equal("Quarter Final", rounds[0].Name)
	s.Equal("Semi Final", rounds[4].Name)
	s.Equal("Final", rounds[6].Name)
	s.Equal(-1, rounds[6].NextMatchIndex)

	// Seeds 1 and 2 have byes and are already waiting in the semi finals
	s.Equal(model.PlayerID("p001"), rounds[4].Player1ID)
	s.Equal(model.PlayerID(""), rounds[4].Player2ID)
	s.Equal(model.PlayerID("p002"), rounds[5].Player1ID)
}

func (s *BracketSuite) TestRoundName() {
	s.Equal("Final", RoundName(3, 3))
	s.Equal("Semi Final", RoundName(2, 3))
	s.Equal("Quarter Final", RoundName(1, 3))
	s.Equal("Round of 16", RoundName(1, 4))
	s.Equal("Round of 64", RoundName(1, 6))
}
