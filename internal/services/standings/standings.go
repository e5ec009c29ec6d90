package standings

import (
	"sort"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
)

// counts reports whether a match contributes to standings
func counts(m *model.Match) bool {
	return m.Status == model.MatchStatusComplete &&
		!m.IsBye &&
		m.HasBothPlayers() &&
		(m.WinnerID == m.Player1ID || m.WinnerID == m.Player2ID)
}

// CompletedMatches filters matches down to the ones that count towards standings
func CompletedMatches(matches []model.Match) []model.Match {
	result := make([]model.Match, 0, len(matches))
	for i := range matches {
		if counts(&matches[i]) {
			result = append(result, matches[i])
		}
	}
	return result
}

// ComputeGroupStandings ranks every player in the group from completed matches.
// Players without results appear with zero stats.
func ComputeGroupStandings(group model.Group, players []model.Player, matches []model.Match, advanceCount int) []model.PlayerStanding {
	index := model.PlayerIndex(players)

	rows := make(map[model.PlayerID]*model.PlayerStanding, len(group.PlayerIDs))
	ordered := make([]*model.PlayerStanding, 0, len(group.PlayerIDs))
	for _, id := range group.PlayerIDs {
		if _, dup := rows[id]; dup {
			continue
		}
		row := &model.PlayerStanding{
			PlayerID: id,
			Name:     index[id].Name,
			GroupID:  group.ID,
		}
		rows[id] = row
		ordered = append(ordered, row)
	}

	var completed []model.Match
	for _, m := range CompletedMatches(matches) {
		if group.ID != "" && m.GroupID != "" && m.GroupID != group.ID {
			continue
		}
		one, two := rows[m.Player1ID], rows[m.Player2ID]
		if one == nil || two == nil {
			continue
		}
		completed = append(completed, m)

		one.MatchesPlayed++
		two.MatchesPlayed++
		if m.WinnerID == m.Player1ID {
			one.Wins++
			two.Losses++
		} else {
			two.Wins++
			one.Losses++
		}

		one.GamesWon += m.Player1Games
		one.GamesLost += m.Player2Games
		two.GamesWon += m.Player2Games
		two.GamesLost += m.Player1Games

		for _, g := range scoring.CountingGames(m) {
			one.PointsScored += *g.Score1
			one.PointsConceded += *g.Score2
			two.PointsScored += *g.Score2
			two.PointsConceded += *g.Score1
		}
	}

	for _, row := range ordered {
		row.GameDifference = row.GamesWon - row.GamesLost
		row.PointsDifference = row.PointsScored - row.PointsConceded
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return compareStats(ordered[i], ordered[j]) < 0
	})
	applyHeadToHead(ordered, completed)

	result := make([]model.PlayerStanding, 0, len(ordered))
	for i, row := range ordered {
		row.Rank = i + 1
		row.Advances = row.Rank <= advanceCount
		result = append(result, *row)
	}
	return result
}

// compareStats orders two rows by wins, then games, then points, then id.
// It returns a negative value when a ranks above b.
func compareStats(a, b *model.PlayerStanding) int {
	switch {
	case a.Wins != b.Wins:
		return b.Wins - a.Wins
	case a.GamesWon != b.GamesWon:
		return b.GamesWon - a.GamesWon
	case a.GamesLost != b.GamesLost:
		return a.GamesLost - b.GamesLost
	case a.PointsScored != b.PointsScored:
		return b.PointsScored - a.PointsScored
	case a.PointsConceded != b.PointsConceded:
		return a.PointsConceded - b.PointsConceded
	case a.PlayerID < b.PlayerID:
		return -1
	case a.PlayerID > b.PlayerID:
		return 1
	default:
		return 0
	}
}

// applyHeadToHead walks clusters of equal wins. A cluster of exactly two is
// settled by the match between them; larger clusters keep the stats order.
func applyHeadToHead(ordered []*model.PlayerStanding, completed []model.Match) {
	start := 0
	for start < len(ordered) {
		end := start + 1
		for end < len(ordered) && ordered[end].Wins == ordered[start].Wins {
			end++
		}

		if end-start == 2 {
			upper, lower := ordered[start], ordered[start+1]
			if winner := headToHeadWinner(upper.PlayerID, lower.PlayerID, completed); winner == lower.PlayerID {
				ordered[start], ordered[start+1] = lower, upper
			}
		}

		start = end
	}
}

// headToHeadWinner returns the winner of the completed match between a and b.
// If they met more than once the latest round wins out.
func headToHeadWinner(a, b model.PlayerID, completed []model.Match) model.PlayerID {
	var winner model.PlayerID
	latest := 0
	for i := range completed {
		m := &completed[i]
		if !m.Involves(a) || !m.Involves(b) || a == b {
			continue
		}
		if winner == "" || m.Round >= latest {
			winner = m.WinnerID
			latest = m.Round
		}
	}
	return winner
}

// ComputeAllGroupStandings partitions matches by group and ranks each group
func ComputeAllGroupStandings(groups []model.Group, players []model.Player, matches []model.Match, advanceCount int) map[model.GroupID][]model.PlayerStanding {
	byGroup := make(map[model.GroupID][]model.Match, len(groups))
	for _, m := range matches {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], m)
	}

	result := make(map[model.GroupID][]model.PlayerStanding, len(groups))
	for _, g := range groups {
		result[g.ID] = ComputeGroupStandings(g, players, byGroup[g.ID], advanceCount)
	}
	return result
}

// Progress summarises how much of a group has been played
type Progress struct {
	Completed int
	Total     int
	AllDone   bool
}

// GroupProgress counts non-bye matches. An empty group is never done.
func GroupProgress(matches []model.Match) Progress {
	var p Progress
	for i := range matches {
		if matches[i].IsBye || matches[i].Status == model.MatchStatusBye {
			continue
		}
		p.Total++
		if matches[i].IsComplete() {
			p.Completed++
		}
	}
	p.AllDone = p.Completed > 0 && p.Completed == p.Total
	return p
}
