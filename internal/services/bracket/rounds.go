package bracket

import (
	"fmt"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// RoundMatch is one match of the full bracket tree
type RoundMatch struct {
	Round          int // 1-indexed
	Index          int // 0-indexed within the round
	Name           string
	Player1ID      model.PlayerID
	Player2ID      model.PlayerID
	IsBye          bool
	WinnerID       model.PlayerID // Byes only
	NextMatchIndex int            // -1 for the final
	NextSlot       int
}

// BuildRounds expands the first round into every round of the tree.
// Players with a first round bye are already placed in round two.
func BuildRounds(b *Bracket) []RoundMatch {
	result := make([]RoundMatch, 0, b.BracketSize-1)

	for _, m := range b.FirstRoundMatches {
		result = append(result, RoundMatch{
			Round:          1,
			Index:          m.Index,
			Name:           RoundName(1, b.TotalRounds),
			Player1ID:      m.Slot1.PlayerID,
			Player2ID:      m.Slot2.PlayerID,
			IsBye:          m.IsBye,
			WinnerID:       m.AdvancingPlayerID,
			NextMatchIndex: m.NextMatchIndex,
			NextSlot:       m.NextSlot,
		})
	}

	offset := 0
	matchesInRound := b.BracketSize / 2
	for round := 2; round <= b.TotalRounds; round++ {
		prev := result[offset : offset+matchesInRound]
		offset += matchesInRound
		matchesInRound /= 2

		for i := 0; i < matchesInRound; i++ {
			rm := RoundMatch{
				Round:          round,
				Index:          i,
				Name:           RoundName(round, b.TotalRounds),
				NextMatchIndex: i / 2,
				NextSlot:       i%2 + 1,
			}
			if round == b.TotalRounds {
				rm.NextMatchIndex = -1
				rm.NextSlot = 0
			}
			if round == 2 {
				rm.Player1ID = prev[2*i].WinnerID
				rm.Player2ID = prev[2*i+1].WinnerID
			}
			result = append(result, rm)
		}
	}

	return result
}

// RoundName returns the display name of a round
func RoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semi Final"
	case 2:
		return "Quarter Final"
	default:
		return fmt.Sprintf("Round of %d", 1<<(totalRounds-round+1))
	}
}
