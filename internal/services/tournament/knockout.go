package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/bracket"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/qualifier"
)

// Knockout is a generated elimination stage
type Knockout struct {
	Stage      *model.Stage
	Bracket    *bracket.Bracket
	Matches    []*model.Match
	Qualifiers []qualifier.Qualifier    // Empty for draws made straight from the roster
	Warnings   []qualifier.ClashWarning // Same-group first round meetings that could not be avoided
}

// GenerateKnockout seeds a knockout from a closed group stage. Qualifiers are
// taken in snake order, first round meetings between group mates are repaired
// where possible and the bracket is laid out in KO seed order. Generating
// again replaces the previous draw.
func (c *Controller) GenerateKnockout(ctx context.Context, sourceStageID model.StageID) (*Knockout, error) {
	source, err := c.storage.GetStage(ctx, sourceStageID)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(source.TournamentID)
	defer unlock()

	source, err = c.storage.GetStage(ctx, sourceStageID)
	if err != nil {
		return nil, err
	}
	if source.Kind != model.StageKindRoundRobin {
		return nil, model.ErrWrongStageKind
	}
	if source.Status != model.StageStatusClosed {
		return nil, model.ErrStageNotClosed
	}

	tables, err := c.computeStandings(ctx, source)
	if err != nil {
		return nil, err
	}
	groupStandings := make([]qualifier.GroupStandings, 0, len(tables.Tables))
	for _, t := range tables.Tables {
		groupStandings = append(groupStandings, qualifier.GroupStandings{Group: *t.Group, Standings: t.Standings})
	}

	qualifiers := qualifier.BuildQualifiers(groupStandings, source.Config)
	if len(qualifiers) < bracket.MinPlayers {
		return nil, fmt.Errorf("%w: %d qualified", model.ErrNotEnoughQualifiers, len(qualifiers))
	}

	qualifiers, warnings := qualifier.AvoidSameGroupClashes(qualifiers)
	for _, w := range warnings {
		c.logger.Warn("same group first round meeting",
			slog.String("stage_id", string(source.ID)),
			slog.String("group_id", string(w.GroupID)),
			slog.Int("seed_a", w.SeedA),
			slog.Int("seed_b", w.SeedB),
		)
	}

	b, err := bracket.FromRanking(qualifier.Ranking(qualifiers))
	if err != nil {
		return nil, err
	}

	t, err := c.storage.GetTournament(ctx, source.TournamentID)
	if err != nil {
		return nil, err
	}
	stage, err := c.knockoutStage(ctx, t, source.ID)
	if err != nil {
		return nil, err
	}
	matches, err := c.saveBracket(ctx, stage, b)
	if err != nil {
		return nil, err
	}

	c.logger.Info("knockout generated",
		slog.String("tournament_id", string(t.ID)),
		slog.String("stage_id", string(stage.ID)),
		slog.String("source_stage_id", string(source.ID)),
		slog.Int("qualifiers", len(qualifiers)),
		slog.Int("bracket_size", b.BracketSize),
		slog.Int("warnings", len(warnings)),
	)

	return &Knockout{Stage: stage, Bracket: b, Matches: matches, Qualifiers: qualifiers, Warnings: warnings}, nil
}

// GenerateKnockoutFromRoster draws every registered player straight into a
// knockout. Explicit seeds hold their rank and the rest are drawn at random.
func (c *Controller) GenerateKnockoutFromRoster(ctx context.Context, tournamentID model.TournamentID) (*Knockout, error) {
	unlock := c.locks.Lock(tournamentID)
	defer unlock()

	t, err := c.storage.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	players, err := c.loadPlayers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	b, err := bracket.GenerateBracket(players, c.random)
	if err != nil {
		return nil, err
	}

	stage, err := c.knockoutStage(ctx, t, "")
	if err != nil {
		return nil, err
	}
	matches, err := c.saveBracket(ctx, stage, b)
	if err != nil {
		return nil, err
	}

	c.logger.Info("knockout drawn",
		slog.String("tournament_id", string(t.ID)),
		slog.String("stage_id", string(stage.ID)),
		slog.Int("players", len(players)),
		slog.Int("bracket_size", b.BracketSize),
	)

	return &Knockout{Stage: stage, Bracket: b, Matches: matches}, nil
}

// knockoutStage returns the existing knockout fed by source, or a new one
func (c *Controller) knockoutStage(ctx context.Context, t *model.Tournament, source model.StageID) (*model.Stage, error) {
	now := c.clock.Now()
	stage, err := c.findStage(ctx, t.ID, func(s *model.Stage) bool {
		return s.Kind == model.StageKindKnockout && s.SourceStage == source
	})
	if err != nil {
		return nil, err
	}
	if stage == nil {
		stage = &model.Stage{
			ID:           model.StageID(newID()),
			TournamentID: t.ID,
			Kind:         model.StageKindKnockout,
			SourceStage:  source,
			CreatedAt:    now,
		}
	}
	stage.Status = model.StageStatusInProgress
	stage.Config = model.StageConfig{MatchFormat: t.Format}
	stage.UpdatedAt = now
	return stage, nil
}

// saveBracket persists the full bracket tree, replacing any earlier draw
func (c *Controller) saveBracket(ctx context.Context, stage *model.Stage, b *bracket.Bracket) ([]*model.Match, error) {
	matches := bracketToMatches(stage, bracket.BuildRounds(b), c.clock.Now())

	if err := c.storage.DeleteMatchesForStage(ctx, stage.ID); err != nil {
		return nil, err
	}
	if err := c.storage.SaveStage(ctx, stage); err != nil {
		return nil, err
	}
	if err := c.storage.SaveMatches(ctx, matches); err != nil {
		c.logger.Error("failed to save bracket",
			slog.String("stage_id", string(stage.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return matches, nil
}

type roundKey struct {
	round, index int
}

// bracketToMatches links every match to the one its winner feeds
func bracketToMatches(stage *model.Stage, rounds []bracket.RoundMatch, now time.Time) []*model.Match {
	ids := make(map[roundKey]model.MatchID, len(rounds))
	for _, rm := range rounds {
		ids[roundKey{rm.Round, rm.Index}] = model.MatchID(newID())
	}

	matches := make([]*model.Match, 0, len(rounds))
	number := 0
	for _, rm := range rounds {
		m := &model.Match{
			ID:           ids[roundKey{rm.Round, rm.Index}],
			TournamentID: stage.TournamentID,
			StageID:      stage.ID,
			Round:        rm.Round,
			Position:     rm.Index,
			Player1ID:    rm.Player1ID,
			Player2ID:    rm.Player2ID,
			Status:       model.MatchStatusPending,
			UpdatedAt:    now,
		}
		if rm.NextMatchIndex >= 0 {
			m.NextMatchID = ids[roundKey{rm.Round + 1, rm.NextMatchIndex}]
			m.NextSlot = rm.NextSlot
		}
		if rm.IsBye {
			m.IsBye = true
			m.Status = model.MatchStatusBye
			m.WinnerID = rm.WinnerID
		} else {
			number++
			m.MatchNumber = number
		}
		matches = append(matches, m)
	}
	return matches
}
