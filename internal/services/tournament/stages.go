package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/roundrobin"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/standings"
)

// GroupStage is a freshly drawn round-robin stage
type GroupStage struct {
	Stage   *model.Stage
	Groups  []*model.Group
	Matches []*model.Match
}

// GroupTable is one group's ranked table
type GroupTable struct {
	Group     *model.Group
	Standings []model.PlayerStanding
	Progress  standings.Progress
	Reasons   []standings.TiebreakReason
}

// StageStandings holds the tables of every group in a stage
type StageStandings struct {
	Stage  *model.Stage
	Tables []GroupTable
}

// AllDone reports whether every group has finished
func (s *StageStandings) AllDone() bool {
	for _, t := range s.Tables {
		if !t.Progress.AllDone {
			return false
		}
	}
	return len(s.Tables) > 0
}

// GetStage retrieves a stage by id
func (c *Controller) GetStage(ctx context.Context, id model.StageID) (*model.Stage, error) {
	return c.storage.GetStage(ctx, id)
}

// ListStages returns the tournament's stages in creation order
func (c *Controller) ListStages(ctx context.Context, tournamentID model.TournamentID) ([]*model.Stage, error) {
	if _, err := c.storage.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return c.storage.GetStagesForTournament(ctx, tournamentID)
}

// GetGroups returns the groups of a round-robin stage
func (c *Controller) GetGroups(ctx context.Context, stageID model.StageID) ([]*model.Group, error) {
	if _, err := c.storage.GetStage(ctx, stageID); err != nil {
		return nil, err
	}
	return c.storage.GetGroupsForStage(ctx, stageID)
}

// GetMatches returns every match of a stage
func (c *Controller) GetMatches(ctx context.Context, stageID model.StageID) ([]*model.Match, error) {
	if _, err := c.storage.GetStage(ctx, stageID); err != nil {
		return nil, err
	}
	return c.storage.GetMatchesForStage(ctx, stageID)
}

// GetMatch retrieves a match by id
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// findStage returns the first stage of the tournament matching the predicate
func (c *Controller) findStage(ctx context.Context, tournamentID model.TournamentID, match func(*model.Stage) bool) (*model.Stage, error) {
	stages, err := c.storage.GetStagesForTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		if match(s) {
			return s, nil
		}
	}
	return nil, nil
}

// CreateGroupStage draws the tournament's players into groups and schedules
// every group. Calling it again while the stage is open redraws the groups
// and replaces all fixtures.
func (c *Controller) CreateGroupStage(ctx context.Context, tournamentID model.TournamentID, cfg model.StageConfig) (*GroupStage, error) {
	if cfg.MatchFormat == "" {
		cfg.MatchFormat = model.DefaultMatchFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(tournamentID)
	defer unlock()

	if _, err := c.storage.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	players, err := c.loadPlayers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, model.ErrNoPlayers
	}

	drawn, err := roundrobin.DistributeIntoGroups(players, cfg.NumberOfGroups)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	stage, err := c.findStage(ctx, tournamentID, func(s *model.Stage) bool {
		return s.Kind == model.StageKindRoundRobin
	})
	if err != nil {
		return nil, err
	}
	if stage != nil && stage.Status == model.StageStatusClosed {
		return nil, model.ErrStageClosed
	}
	if stage == nil {
		stage = &model.Stage{
			ID:           model.StageID(newID()),
			TournamentID: tournamentID,
			Kind:         model.StageKindRoundRobin,
			Status:       model.StageStatusInProgress,
			CreatedAt:    now,
		}
	}
	stage.Config = cfg
	stage.UpdatedAt = now

	for i := range drawn {
		drawn[i].ID = model.GroupID(newID())
		drawn[i].StageID = stage.ID
	}

	fixtures, err := roundrobin.GenerateMultiGroupSchedule(drawn, 0)
	if err != nil {
		return nil, err
	}
	matches := fixturesToMatches(tournamentID, stage.ID, fixtures, now)

	groups := make([]*model.Group, len(drawn))
	for i := range drawn {
		groups[i] = &drawn[i]
	}

	if err := c.storage.DeleteMatchesForStage(ctx, stage.ID); err != nil {
		return nil, err
	}
	if err := c.storage.SaveStage(ctx, stage); err != nil {
		return nil, err
	}
	if err := c.storage.SaveGroups(ctx, stage.ID, groups); err != nil {
		return nil, err
	}
	if err := c.storage.SaveMatches(ctx, matches); err != nil {
		c.logger.Error("failed to save group matches",
			slog.String("stage_id", string(stage.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("group stage drawn",
		slog.String("tournament_id", string(tournamentID)),
		slog.String("stage_id", string(stage.ID)),
		slog.Int("groups", len(groups)),
		slog.Int("matches", len(matches)),
	)

	return &GroupStage{Stage: stage, Groups: groups, Matches: matches}, nil
}

// fixturesToMatches turns scheduled fixtures into stored matches. Positions
// run across all groups within a round. Bye fixtures become settled walkovers.
func fixturesToMatches(tournamentID model.TournamentID, stageID model.StageID, fixtures []roundrobin.Fixture, now time.Time) []*model.Match {
	matches := make([]*model.Match, 0, len(fixtures))
	position := make(map[int]int)
	for _, f := range fixtures {
		m := &model.Match{
			ID:           model.MatchID(newID()),
			TournamentID: tournamentID,
			StageID:      stageID,
			GroupID:      f.GroupID,
			Round:        f.Round,
			MatchNumber:  f.MatchNumber,
			Position:     position[f.Round],
			Player1ID:    f.Player1ID,
			Player2ID:    f.Player2ID,
			Status:       model.MatchStatusPending,
			UpdatedAt:    now,
		}
		position[f.Round]++
		if f.IsBye {
			m.IsBye = true
			m.Player2ID = ""
			m.Status = model.MatchStatusBye
			m.WinnerID = f.Player1ID
		}
		matches = append(matches, m)
	}
	return matches
}

// GetStandings ranks every group of a round-robin stage from its results
func (c *Controller) GetStandings(ctx context.Context, stageID model.StageID) (*StageStandings, error) {
	stage, err := c.storage.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage.Kind != model.StageKindRoundRobin {
		return nil, model.ErrWrongStageKind
	}
	return c.computeStandings(ctx, stage)
}

func (c *Controller) computeStandings(ctx context.Context, stage *model.Stage) (*StageStandings, error) {
	groups, err := c.storage.GetGroupsForStage(ctx, stage.ID)
	if err != nil {
		return nil, err
	}
	players, err := c.loadPlayers(ctx, stage.TournamentID)
	if err != nil {
		return nil, err
	}
	stored, err := c.storage.GetMatchesForStage(ctx, stage.ID)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[model.GroupID][]model.Match)
	for _, m := range stored {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], *m)
	}

	result := &StageStandings{Stage: stage, Tables: make([]GroupTable, 0, len(groups))}
	for _, g := range groups {
		matches := byGroup[g.ID]
		table := standings.ComputeGroupStandings(*g, players, matches, stage.Config.AdvanceCount)
		result.Tables = append(result.Tables, GroupTable{
			Group:     g,
			Standings: table,
			Progress:  standings.GroupProgress(matches),
			Reasons:   standings.ExplainStandings(table, standings.CompletedMatches(matches)),
		})
	}
	return result, nil
}

// CloseStage locks a round-robin stage once every group has finished.
// Closed stages accept no further scores and can seed a knockout.
func (c *Controller) CloseStage(ctx context.Context, stageID model.StageID) (*model.Stage, error) {
	stage, err := c.storage.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.Lock(stage.TournamentID)
	defer unlock()

	// Re-read under the lock
	stage, err = c.storage.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage.Kind != model.StageKindRoundRobin {
		return nil, model.ErrWrongStageKind
	}
	if stage.Status == model.StageStatusClosed {
		return stage, nil
	}

	tables, err := c.computeStandings(ctx, stage)
	if err != nil {
		return nil, err
	}
	var unfinished []string
	for _, t := range tables.Tables {
		if !t.Progress.AllDone {
			unfinished = append(unfinished, fmt.Sprintf("%s (%d/%d)", t.Group.Name, t.Progress.Completed, t.Progress.Total))
		}
	}
	if len(unfinished) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrGroupsIncomplete, strings.Join(unfinished, ", "))
	}

	stage.Status = model.StageStatusClosed
	stage.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveStage(ctx, stage); err != nil {
		return nil, err
	}

	c.logger.Info("stage closed",
		slog.String("tournament_id", string(stage.TournamentID)),
		slog.String("stage_id", string(stage.ID)),
	)
	return stage, nil
}
