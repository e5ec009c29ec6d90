package scoring

import (
	"fmt"
	"strings"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

const (
	// PointsToWin is the minimum winning score of a game
	PointsToWin = 11
	// DeuceAt is the score at which both players must win by exactly two
	DeuceAt = PointsToWin - 1
	// MinMargin is the lead a winner needs
	MinMargin = 2
	// MaxGameScore is the ceiling for a single score; anything above is a typo
	MaxGameScore = 99
)

// Field names the input a validation problem belongs to
type Field string

const (
	FieldScore1 Field = "score1"
	FieldScore2 Field = "score2"
	FieldBoth   Field = "both"
	FieldGame   Field = "game"
)

// FieldError is a single validation problem tied to an input field
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating one game score
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// Err converts a failed result into a *ScoreError, or nil when valid
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ScoreError{Errors: r.Errors}
}

// ScoreError carries field-attributed problems through error returns
type ScoreError struct {
	Errors []FieldError
}

func (e *ScoreError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid score: " + strings.Join(parts, "; ")
}

// Rules describes how many games a format needs
type Rules struct {
	GamesNeeded int
	MaxGames    int
}

// FormatRules returns the game counts for a best-of-N format
func FormatRules(format model.MatchFormat) (Rules, error) {
	switch format {
	case model.FormatBestOf3:
		return Rules{GamesNeeded: 2, MaxGames: 3}, nil
	case model.FormatBestOf5:
		return Rules{GamesNeeded: 3, MaxGames: 5}, nil
	case model.FormatBestOf7:
		return Rules{GamesNeeded: 4, MaxGames: 7}, nil
	default:
		return Rules{}, fmt.Errorf("%w: %q", model.ErrInvalidMatchFormat, format)
	}
}

// rulesOrDefault falls back to the default format for unknown values
func rulesOrDefault(format model.MatchFormat) Rules {
	rules, err := FormatRules(format)
	if err != nil {
		rules, _ = FormatRules(model.DefaultMatchFormat)
	}
	return rules
}

// ValidateGameScore checks a single game against table tennis scoring rules.
// A game is won by the first player to 11 with a lead of two; from 10-10 the
// game continues until one player leads by exactly two.
func ValidateGameScore(score1, score2 int) ValidationResult {
	var errs []FieldError
	errs = append(errs, checkRange(FieldScore1, score1)...)
	errs = append(errs, checkRange(FieldScore2, score2)...)
	if len(errs) > 0 {
		return ValidationResult{Errors: errs}
	}

	if score1 == score2 {
		return invalid(FieldBoth, "scores cannot be equal")
	}

	winner, loser, winnerField := score1, score2, FieldScore1
	if score2 > score1 {
		winner, loser, winnerField = score2, score1, FieldScore2
	}

	if winner < PointsToWin {
		return invalid(winnerField, fmt.Sprintf("winning score must be at least %d", PointsToWin))
	}

	margin := winner - loser
	if margin < MinMargin {
		return invalid(FieldBoth, fmt.Sprintf("winner must lead by at least %d points", MinMargin))
	}
	if (loser >= DeuceAt || winner > PointsToWin) && margin != MinMargin {
		return invalid(FieldBoth, fmt.Sprintf("past %d-%d the game ends at a %d point lead", DeuceAt, DeuceAt, MinMargin))
	}

	return ValidationResult{Valid: true}
}

func checkRange(field Field, score int) []FieldError {
	switch {
	case score < 0:
		return []FieldError{{Field: field, Message: "score cannot be negative"}}
	case score > MaxGameScore:
		return []FieldError{{Field: field, Message: fmt.Sprintf("score cannot exceed %d", MaxGameScore)}}
	default:
		return nil
	}
}

func invalid(field Field, message string) ValidationResult {
	return ValidationResult{Errors: []FieldError{{Field: field, Message: message}}}
}

// DeriveGameWinnerID returns the player with the higher score.
// Scores are assumed to be validated already; equal scores yield no winner.
func DeriveGameWinnerID(score1, score2 int, player1ID, player2ID model.PlayerID) model.PlayerID {
	switch {
	case score1 > score2:
		return player1ID
	case score2 > score1:
		return player2ID
	default:
		return ""
	}
}
