package tournament

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
)

// ValidateScore is the advisory check offered to score entry forms.
// RecordGameScore repeats it before anything is written.
func (c *Controller) ValidateScore(score1, score2 int) scoring.ValidationResult {
	return scoring.ValidateGameScore(score1, score2)
}

// RecordGameScore enters or corrects one game of a match and recomputes the
// match. A knockout winner moves into the next match.
func (c *Controller) RecordGameScore(ctx context.Context, matchID model.MatchID, number, score1, score2 int) (*model.Match, error) {
	if err := scoring.ValidateGameScore(score1, score2).Err(); err != nil {
		return nil, err
	}

	return c.updateMatch(ctx, matchID, func(m *model.Match, format model.MatchFormat) error {
		if g := m.GetGame(number); g != nil && g.HasScores() {
			// Corrections keep the game in place
			g.Score1, g.Score2 = &score1, &score2
			return nil
		}
		check := scoring.CanAddAnotherGame(m.Games, format, m.Player1ID, m.Player2ID, number)
		if err := check.Err(); err != nil {
			return err
		}
		if g := m.GetGame(number); g != nil {
			g.Score1, g.Score2 = &score1, &score2
			return nil
		}
		m.Games = append(m.Games, model.NewGame(number, score1, score2))
		return nil
	})
}

// DeleteGameScore removes a game. Deleting the deciding game reopens the match.
func (c *Controller) DeleteGameScore(ctx context.Context, matchID model.MatchID, number int) (*model.Match, error) {
	return c.updateMatch(ctx, matchID, func(m *model.Match, _ model.MatchFormat) error {
		for i, g := range m.Games {
			if g.Number == number {
				m.Games = append(m.Games[:i], m.Games[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: game %d", model.ErrGameNotFound, number)
	})
}

// updateMatch applies edit to a playable match under the tournament lock,
// recomputes it and carries a changed knockout result forward.
func (c *Controller) updateMatch(ctx context.Context, matchID model.MatchID, edit func(*model.Match, model.MatchFormat) error) (*model.Match, error) {
	m, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(m.TournamentID)
	defer unlock()

	// Re-read under the lock
	m, err = c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	stage, err := c.storage.GetStage(ctx, m.StageID)
	if err != nil {
		return nil, err
	}
	if stage.Status == model.StageStatusClosed {
		return nil, model.ErrStageClosed
	}
	if m.IsBye || !m.HasBothPlayers() {
		return nil, model.ErrMatchNotPlayable
	}

	previousWinner := m.WinnerID
	format := stage.Format()
	if err := edit(m, format); err != nil {
		return nil, err
	}
	scoring.Apply(m, format)
	m.UpdatedAt = c.clock.Now()

	changed := []*model.Match{m}
	if m.WinnerID != previousWinner && m.NextMatchID != "" {
		next, err := c.advanceWinner(ctx, m, format)
		if err != nil {
			return nil, err
		}
		changed = append(changed, next)
	}

	if err := c.storage.SaveMatches(ctx, changed); err != nil {
		return nil, err
	}

	if m.IsComplete() && previousWinner != m.WinnerID {
		c.logger.Info("match completed",
			slog.String("match_id", string(m.ID)),
			slog.String("winner_id", string(m.WinnerID)),
			slog.Int("player1_games", m.Player1Games),
			slog.Int("player2_games", m.Player2Games),
		)
	}
	return m, nil
}

// advanceWinner places m's current winner (or a vacancy) into the next match.
// A next match that has already started cannot change hands.
func (c *Controller) advanceWinner(ctx context.Context, m *model.Match, format model.MatchFormat) (*model.Match, error) {
	next, err := c.storage.GetMatch(ctx, m.NextMatchID)
	if err != nil {
		return nil, err
	}
	if next.Status == model.MatchStatusLive || next.Status == model.MatchStatusComplete {
		return nil, model.ErrNextMatchStarted
	}

	next.SetSlot(m.NextSlot, m.WinnerID)
	scoring.Apply(next, format)
	next.UpdatedAt = m.UpdatedAt
	return next, nil
}
