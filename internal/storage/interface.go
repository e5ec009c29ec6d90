package storage

import (
	"context"
	"sort"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// Storage defines the interface for data persistence.
// List operations return results in a stable order (see the Sort helpers).
type Storage interface {
	// Tournament operations
	SaveTournament(ctx context.Context, tournament *model.Tournament) error
	GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	ListTournaments(ctx context.Context) ([]*model.Tournament, error)
	TournamentCodeExists(ctx context.Context, code string) (bool, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayersForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Player, error)

	// Stage operations
	SaveStage(ctx context.Context, stage *model.Stage) error
	GetStage(ctx context.Context, id model.StageID) (*model.Stage, error)
	GetStagesForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Stage, error)

	// Group operations. SaveGroups replaces every group of the stage.
	SaveGroups(ctx context.Context, stageID model.StageID, groups []*model.Group) error
	GetGroupsForStage(ctx context.Context, stageID model.StageID) ([]*model.Group, error)

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	SaveMatches(ctx context.Context, matches []*model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	GetMatchesForStage(ctx context.Context, stageID model.StageID) ([]*model.Match, error)
	DeleteMatchesForStage(ctx context.Context, stageID model.StageID) error

	// Close releases any underlying connection
	Close() error
}

// SortTournaments orders tournaments oldest first
func SortTournaments(tournaments []*model.Tournament) {
	sort.SliceStable(tournaments, func(i, j int) bool {
		a, b := tournaments[i], tournaments[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortPlayers orders players by registration time
func SortPlayers(players []*model.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortStages orders stages by creation time
func SortStages(stages []*model.Stage) {
	sort.SliceStable(stages, func(i, j int) bool {
		a, b := stages[i], stages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortGroups orders groups by number
func SortGroups(groups []*model.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Number < groups[j].Number
	})
}

// SortMatches orders matches by round, then position within the round
func SortMatches(matches []*model.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}
