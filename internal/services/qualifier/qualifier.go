package qualifier

import (
	"sort"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/bracket"
)

// Qualifier is a player advancing from a group into the knockout
type Qualifier struct {
	PlayerID    model.PlayerID
	Name        string
	GroupID     model.GroupID
	GroupNumber int
	GroupRank   int
	KOSeed      int
	BestPlaced  bool // Picked from the next-placed pool rather than on rank

	Wins             int
	GameDifference   int
	PointsDifference int
}

// GroupStandings pairs a group with its ranked table
type GroupStandings struct {
	Group     model.Group
	Standings []model.PlayerStanding
}

func standingAt(table []model.PlayerStanding, rank int) (model.PlayerStanding, bool) {
	for _, row := range table {
		if row.Rank == rank {
			return row, true
		}
	}
	return model.PlayerStanding{}, false
}

func fromStanding(g model.Group, row model.PlayerStanding) Qualifier {
	return Qualifier{
		PlayerID:         row.PlayerID,
		Name:             row.Name,
		GroupID:          g.ID,
		GroupNumber:      g.Number,
		GroupRank:        row.Rank,
		Wins:             row.Wins,
		GameDifference:   row.GameDifference,
		PointsDifference: row.PointsDifference,
	}
}

// BuildQualifiers takes the top AdvanceCount of every group in snake order:
// all group winners by group number, then all runners up, and so on. With
// AllowBestThird the best BestThirdCount next-placed players are appended.
// KO seeds run 1..N over the result.
func BuildQualifiers(groups []GroupStandings, cfg model.StageConfig) []Qualifier {
	ordered := make([]GroupStandings, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Group.Number < ordered[j].Group.Number
	})

	var result []Qualifier
	for rank := 1; rank <= cfg.AdvanceCount; rank++ {
		for _, gs := range ordered {
			if row, ok := standingAt(gs.Standings, rank); ok {
				result = append(result, fromStanding(gs.Group, row))
			}
		}
	}

	if cfg.AllowBestThird && cfg.BestThirdCount > 0 {
		var pool []Qualifier
		for _, gs := range ordered {
			if row, ok := standingAt(gs.Standings, cfg.AdvanceCount+1); ok {
				q := fromStanding(gs.Group, row)
				q.BestPlaced = true
				pool = append(pool, q)
			}
		}
		sortAcrossGroups(pool)
		if len(pool) > cfg.BestThirdCount {
			pool = pool[:cfg.BestThirdCount]
		}
		result = append(result, pool...)
	}

	for i := range result {
		result[i].KOSeed = i + 1
	}
	return result
}

// sortAcrossGroups ranks players from different groups. They never met, so
// there is no head-to-head step.
func sortAcrossGroups(pool []Qualifier) {
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.GameDifference != b.GameDifference {
			return a.GameDifference > b.GameDifference
		}
		if a.PointsDifference != b.PointsDifference {
			return a.PointsDifference > b.PointsDifference
		}
		return a.PlayerID < b.PlayerID
	})
}

// Ranking returns the qualifier ids in KO seed order
func Ranking(qualifiers []Qualifier) []model.PlayerID {
	ordered := bySeed(qualifiers)
	ids := make([]model.PlayerID, len(ordered))
	for i, q := range ordered {
		ids[i] = q.PlayerID
	}
	return ids
}

func bySeed(qualifiers []Qualifier) []Qualifier {
	ordered := make([]Qualifier, len(qualifiers))
	copy(ordered, qualifiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].KOSeed < ordered[j].KOSeed
	})
	return ordered
}

// firstRoundPairs returns the seed pairs that meet in round one, byes excluded
func firstRoundPairs(n int) [][2]int {
	order := bracket.SeedOrder(bracket.NextPowerOfTwo(n))
	pairs := make([][2]int, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		a, b := order[i], order[i+1]
		if a > n || b > n {
			continue
		}
		pairs = append(pairs, [2]int{a, b})
	}
	return pairs
}
