package scoring

import (
	"fmt"
	"sort"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// Outcome is the match-level result derived from its games
type Outcome string

const (
	OutcomeUndecided   Outcome = "undecided"
	OutcomePlayer1Wins Outcome = "player1_wins"
	OutcomePlayer2Wins Outcome = "player2_wins"
)

// MatchState is the derived state of a match.
// DecidingGame is the number of the game that settled the match, 0 while undecided.
type MatchState struct {
	Player1Games int
	Player2Games int
	Outcome      Outcome
	DecidingGame int
}

// IsDecided returns true once either player reached the required game count
func (s MatchState) IsDecided() bool {
	return s.Outcome != OutcomeUndecided
}

// AddGameResult reports whether a new game may be entered
type AddGameResult struct {
	Allowed bool
	Reason  string
}

// Err converts a rejection into a *ScoreError, or nil when allowed
func (r AddGameResult) Err() error {
	if r.Allowed {
		return nil
	}
	return &ScoreError{Errors: []FieldError{{Field: FieldGame, Message: r.Reason}}}
}

// scoredGames returns the games that have both scores, ordered by number
func scoredGames(games []model.Game) []model.Game {
	scored := make([]model.Game, 0, len(games))
	for _, g := range games {
		if g.HasScores() {
			scored = append(scored, g)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Number < scored[j].Number
	})
	return scored
}

// ComputeMatchState tallies games in number order until one side reaches the
// games needed. Games after the deciding one are ignored.
func ComputeMatchState(games []model.Game, format model.MatchFormat, player1ID, player2ID model.PlayerID) MatchState {
	rules := rulesOrDefault(format)
	state := MatchState{Outcome: OutcomeUndecided}

	for _, g := range scoredGames(games) {
		switch {
		case *g.Score1 > *g.Score2:
			state.Player1Games++
		case *g.Score2 > *g.Score1:
			state.Player2Games++
		default:
			continue
		}

		if state.Player1Games >= rules.GamesNeeded {
			state.Outcome = OutcomePlayer1Wins
		} else if state.Player2Games >= rules.GamesNeeded {
			state.Outcome = OutcomePlayer2Wins
		}
		if state.IsDecided() {
			state.DecidingGame = g.Number
			break
		}
	}

	return state
}

// CanAddAnotherGame checks whether the candidate game number may be entered
func CanAddAnotherGame(existing []model.Game, format model.MatchFormat, player1ID, player2ID model.PlayerID, candidate int) AddGameResult {
	rules, err := FormatRules(format)
	if err != nil {
		return AddGameResult{Reason: err.Error()}
	}

	if candidate < 1 || candidate > rules.MaxGames {
		return AddGameResult{Reason: fmt.Sprintf("game number must be between 1 and %d", rules.MaxGames)}
	}

	scored := scoredGames(existing)
	for _, g := range scored {
		if g.Number == candidate {
			return AddGameResult{Reason: fmt.Sprintf("game %d is already recorded", candidate)}
		}
	}

	state := ComputeMatchState(scored, format, player1ID, player2ID)
	if state.IsDecided() {
		return AddGameResult{Reason: fmt.Sprintf("match already decided %d-%d in game %d",
			state.Player1Games, state.Player2Games, state.DecidingGame)}
	}

	next := lowestMissingGame(scored, rules.MaxGames)
	if candidate != next {
		return AddGameResult{Reason: fmt.Sprintf("game %d must be entered before game %d", next, candidate)}
	}

	return AddGameResult{Allowed: true}
}

// CountingGames returns the scored games of a decided match up to and
// including the deciding one, found from the stored game counts. Games
// entered after the match was settled do not count.
func CountingGames(m model.Match) []model.Game {
	var p1, p2 int
	counting := make([]model.Game, 0, len(m.Games))
	for _, g := range scoredGames(m.Games) {
		switch {
		case *g.Score1 > *g.Score2:
			p1++
		case *g.Score2 > *g.Score1:
			p2++
		default:
			continue
		}
		counting = append(counting, g)
		if p1 == m.Player1Games && p2 == m.Player2Games {
			break
		}
	}
	return counting
}

// lowestMissingGame returns the first game number without scores. A deleted
// game leaves a hole that must be filled before later games.
func lowestMissingGame(scored []model.Game, maxGames int) int {
	recorded := make(map[int]bool, len(scored))
	for _, g := range scored {
		recorded[g.Number] = true
	}
	for n := 1; n <= maxGames; n++ {
		if !recorded[n] {
			return n
		}
	}
	return maxGames + 1
}

// DeriveMatchStatus maps a computed state onto the match lifecycle
func DeriveMatchStatus(state MatchState, games []model.Game) model.MatchStatus {
	if state.IsDecided() {
		return model.MatchStatusComplete
	}
	for _, g := range games {
		if g.HasScores() {
			return model.MatchStatusLive
		}
	}
	return model.MatchStatusPending
}

// MatchWinnerID returns the winning player for a decided state
func MatchWinnerID(state MatchState, player1ID, player2ID model.PlayerID) model.PlayerID {
	switch state.Outcome {
	case OutcomePlayer1Wins:
		return player1ID
	case OutcomePlayer2Wins:
		return player2ID
	default:
		return ""
	}
}

// Apply recomputes every derived field of a match from its games.
// Bye matches are left untouched. Calling it repeatedly is safe.
func Apply(m *model.Match, format model.MatchFormat) MatchState {
	if m.IsBye {
		return MatchState{Outcome: OutcomeUndecided}
	}

	m.SortGames()
	for i := range m.Games {
		g := &m.Games[i]
		g.WinnerID = ""
		if g.HasScores() {
			g.WinnerID = DeriveGameWinnerID(*g.Score1, *g.Score2, m.Player1ID, m.Player2ID)
		}
	}

	state := ComputeMatchState(m.Games, format, m.Player1ID, m.Player2ID)
	m.Player1Games = state.Player1Games
	m.Player2Games = state.Player2Games
	m.Status = DeriveMatchStatus(state, m.Games)
	m.WinnerID = MatchWinnerID(state, m.Player1ID, m.Player2ID)
	return state
}
