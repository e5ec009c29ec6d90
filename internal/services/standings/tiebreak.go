package standings

import (
	"fmt"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// TiebreakRule names the step of the ranking chain that separated two rows
type TiebreakRule string

const (
	RuleWins           TiebreakRule = "wins"
	RuleHeadToHead     TiebreakRule = "head_to_head"
	RuleGamesWon       TiebreakRule = "games_won"
	RuleGamesLost      TiebreakRule = "games_lost"
	RulePointsScored   TiebreakRule = "points_scored"
	RulePointsConceded TiebreakRule = "points_conceded"
	RulePlayerID       TiebreakRule = "player_id"
)

// TiebreakReason explains why one row ranks above another
type TiebreakReason struct {
	Rule        TiebreakRule
	Description string
}

// GetTiebreakerReason explains why higher ranks above lower, assuming the
// two are the only players on their win count. Use ExplainStandings for a
// full table where larger ties skip head-to-head.
func GetTiebreakerReason(higher, lower model.PlayerStanding, completed []model.Match) TiebreakReason {
	return reason(higher, lower, completed, true)
}

// ExplainStandings returns one reason per adjacent pair of a ranked table:
// entry i explains why row i ranks above row i+1
func ExplainStandings(table []model.PlayerStanding, completed []model.Match) []TiebreakReason {
	if len(table) < 2 {
		return nil
	}

	tied := make(map[int]int, len(table))
	for _, row := range table {
		tied[row.Wins]++
	}

	reasons := make([]TiebreakReason, 0, len(table)-1)
	for i := 0; i+1 < len(table); i++ {
		twoWay := tied[table[i].Wins] == 2
		reasons = append(reasons, reason(table[i], table[i+1], completed, twoWay))
	}
	return reasons
}

func reason(higher, lower model.PlayerStanding, completed []model.Match, twoWay bool) TiebreakReason {
	if higher.Wins != lower.Wins {
		return TiebreakReason{RuleWins, fmt.Sprintf("more wins (%d vs %d)", higher.Wins, lower.Wins)}
	}
	if twoWay {
		if winner := headToHeadWinner(higher.PlayerID, lower.PlayerID, CompletedMatches(completed)); winner == higher.PlayerID {
			return TiebreakReason{RuleHeadToHead, "won the head-to-head match"}
		}
	}
	switch {
	case higher.GamesWon != lower.GamesWon:
		return TiebreakReason{RuleGamesWon, fmt.Sprintf("more games won (%d vs %d)", higher.GamesWon, lower.GamesWon)}
	case higher.GamesLost != lower.GamesLost:
		return TiebreakReason{RuleGamesLost, fmt.Sprintf("fewer games lost (%d vs %d)", higher.GamesLost, lower.GamesLost)}
	case higher.PointsScored != lower.PointsScored:
		return TiebreakReason{RulePointsScored, fmt.Sprintf("more points scored (%d vs %d)", higher.PointsScored, lower.PointsScored)}
	case higher.PointsConceded != lower.PointsConceded:
		return TiebreakReason{RulePointsConceded, fmt.Sprintf("fewer points conceded (%d vs %d)", higher.PointsConceded, lower.PointsConceded)}
	default:
		return TiebreakReason{RulePlayerID, "identical record, ordered by player id"}
	}
}
