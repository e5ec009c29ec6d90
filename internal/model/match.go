package model

import (
	"sort"
	"time"
)

// MatchID uniquely identifies a match
type MatchID string

// MatchStatus represents the lifecycle of a match
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"  // No games entered yet
	MatchStatusLive     MatchStatus = "live"     // At least one game entered, not decided
	MatchStatusComplete MatchStatus = "complete" // A player reached the required game count
	MatchStatusBye      MatchStatus = "bye"      // Walkover, never played
)

// MatchFormat is the best-of-N format of a match
type MatchFormat string

const (
	FormatBestOf3 MatchFormat = "bo3"
	FormatBestOf5 MatchFormat = "bo5"
	FormatBestOf7 MatchFormat = "bo7"
)

// DefaultMatchFormat is used when a stage does not configure one
const DefaultMatchFormat = FormatBestOf5

// Game is one set within a match. Scores stay nil until entered.
type Game struct {
	Number   int
	Score1   *int
	Score2   *int
	WinnerID PlayerID // Empty until both scores are present
}

// HasScores returns true if both scores have been entered
func (g *Game) HasScores() bool {
	return g.Score1 != nil && g.Score2 != nil
}

// NewGame builds a scored game
func NewGame(number, score1, score2 int) Game {
	return Game{Number: number, Score1: &score1, Score2: &score2}
}

// Match is a head-to-head encounter between two player slots.
// A slot holding an empty PlayerID is vacant, waiting for a prior result.
type Match struct {
	ID           MatchID
	TournamentID TournamentID
	StageID      StageID
	GroupID      GroupID // Set for group matches only

	Round       int // 1-indexed
	MatchNumber int // Tournament-wide sequence, 0 when unnumbered
	Position    int // 0-indexed position within the round

	Player1ID PlayerID
	Player2ID PlayerID

	Games        []Game
	Status       MatchStatus
	WinnerID     PlayerID
	Player1Games int
	Player2Games int
	IsBye        bool

	// Knockout wiring: the winner feeds NextSlot (1 or 2) of NextMatchID
	NextMatchID MatchID
	NextSlot    int

	UpdatedAt time.Time
}

// HasBothPlayers returns true if neither slot is vacant
func (m *Match) HasBothPlayers() bool {
	return m.Player1ID != "" && m.Player2ID != ""
}

// Involves returns true if the player occupies either slot
func (m *Match) Involves(playerID PlayerID) bool {
	return playerID != "" && (m.Player1ID == playerID || m.Player2ID == playerID)
}

// Opponent returns the other player in the match, or empty if not involved
func (m *Match) Opponent(playerID PlayerID) PlayerID {
	switch playerID {
	case m.Player1ID:
		return m.Player2ID
	case m.Player2ID:
		return m.Player1ID
	default:
		return ""
	}
}

// IsComplete returns true if the match has a result
func (m *Match) IsComplete() bool {
	return m.Status == MatchStatusComplete
}

// GetGame returns the game with the given number, or nil
func (m *Match) GetGame(number int) *Game {
	for i := range m.Games {
		if m.Games[i].Number == number {
			return &m.Games[i]
		}
	}
	return nil
}

// SortGames orders games by number
func (m *Match) SortGames() {
	sort.Slice(m.Games, func(i, j int) bool {
		return m.Games[i].Number < m.Games[j].Number
	})
}

// SetSlot places a player into slot 1 or 2
func (m *Match) SetSlot(slot int, playerID PlayerID) {
	if slot == 1 {
		m.Player1ID = playerID
	} else {
		m.Player2ID = playerID
	}
}

// SlotPlayer returns the occupant of slot 1 or 2
func (m *Match) SlotPlayer(slot int) PlayerID {
	if slot == 1 {
		return m.Player1ID
	}
	return m.Player2ID
}

// Clone returns a deep copy of the match
func (m *Match) Clone() *Match {
	c := *m
	if m.Games != nil {
		c.Games = make([]Game, len(m.Games))
		for i, g := range m.Games {
			c.Games[i] = g
			if g.Score1 != nil {
				s := *g.Score1
				c.Games[i].Score1 = &s
			}
			if g.Score2 != nil {
				s := *g.Score2
				c.Games[i].Score2 = &s
			}
		}
	}
	return &c
}
