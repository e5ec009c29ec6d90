package response

import (
	"time"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/bracket"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/qualifier"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/standings"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/tournament"
)

// Tournament represents a tournament in API responses
type Tournament struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

// TournamentFromModel converts a model.Tournament
func TournamentFromModel(t *model.Tournament) Tournament {
	return Tournament{
		ID:        string(t.ID),
		Code:      t.Code,
		Name:      t.Name,
		Format:    string(t.Format),
		CreatedAt: t.CreatedAt,
	}
}

// Player represents a player in API responses
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Club string `json:"club,omitempty"`
	Seed *int   `json:"seed,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	var seed *int
	if p.HasSeed() {
		seed = model.SeedPtr(p.SeedValue())
	}
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
		Club: p.Club,
		Seed: seed,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	result := make([]Player, len(players))
	for i, p := range players {
		result[i] = PlayerFromModel(p)
	}
	return result
}

// StageConfig represents round-robin options
type StageConfig struct {
	NumberOfGroups int    `json:"number_of_groups,omitempty"`
	AdvanceCount   int    `json:"advance_count,omitempty"`
	MatchFormat    string `json:"match_format"`
	AllowBestThird bool   `json:"allow_best_third,omitempty"`
	BestThirdCount int    `json:"best_third_count,omitempty"`
}

// Stage represents a stage in API responses
type Stage struct {
	ID          string      `json:"id"`
	Kind        string      `json:"kind"`
	Status      string      `json:"status"`
	Config      StageConfig `json:"config"`
	SourceStage string      `json:"source_stage,omitempty"`
}

// StageFromModel converts a model.Stage
func StageFromModel(s *model.Stage) Stage {
	return Stage{
		ID:     string(s.ID),
		Kind:   string(s.Kind),
		Status: string(s.Status),
		Config: StageConfig{
			NumberOfGroups: s.Config.NumberOfGroups,
			AdvanceCount:   s.Config.AdvanceCount,
			MatchFormat:    string(s.Format()),
			AllowBestThird: s.Config.AllowBestThird,
			BestThirdCount: s.Config.BestThirdCount,
		},
		SourceStage: string(s.SourceStage),
	}
}

// StagesFromModel converts a slice of stages
func StagesFromModel(stages []*model.Stage) []Stage {
	result := make([]Stage, len(stages))
	for i, s := range stages {
		result[i] = StageFromModel(s)
	}
	return result
}

// Group represents a group in API responses
type Group struct {
	ID        string   `json:"id"`
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	PlayerIDs []string `json:"player_ids"`
}

// GroupFromModel converts a model.Group
func GroupFromModel(g *model.Group) Group {
	ids := make([]string, len(g.PlayerIDs))
	for i, id := range g.PlayerIDs {
		ids[i] = string(id)
	}
	return Group{ID: string(g.ID), Number: g.Number, Name: g.Name, PlayerIDs: ids}
}

// GroupsFromModel converts a slice of groups
func GroupsFromModel(groups []*model.Group) []Group {
	result := make([]Group, len(groups))
	for i, g := range groups {
		result[i] = GroupFromModel(g)
	}
	return result
}

// Game represents one game of a match
type Game struct {
	Number   int    `json:"number"`
	Score1   *int   `json:"score1"`
	Score2   *int   `json:"score2"`
	WinnerID string `json:"winner_id,omitempty"`
}

// Match represents a match in API responses
type Match struct {
	ID           string `json:"id"`
	StageID      string `json:"stage_id"`
	GroupID      string `json:"group_id,omitempty"`
	Round        int    `json:"round"`
	MatchNumber  int    `json:"match_number,omitempty"`
	Position     int    `json:"position"`
	Player1ID    string `json:"player1_id,omitempty"`
	Player2ID    string `json:"player2_id,omitempty"`
	Games        []Game `json:"games"`
	Status       string `json:"status"`
	WinnerID     string `json:"winner_id,omitempty"`
	Player1Games int    `json:"player1_games"`
	Player2Games int    `json:"player2_games"`
	IsBye        bool   `json:"is_bye,omitempty"`
	NextMatchID  string `json:"next_match_id,omitempty"`
	NextSlot     int    `json:"next_slot,omitempty"`
}

// MatchFromModel converts a model.Match
func MatchFromModel(m *model.Match) Match {
	games := make([]Game, len(m.Games))
	for i, g := range m.Games {
		games[i] = Game{Number: g.Number, Score1: g.Score1, Score2: g.Score2, WinnerID: string(g.WinnerID)}
	}
	return Match{
		ID:           string(m.ID),
		StageID:      string(m.StageID),
		GroupID:      string(m.GroupID),
		Round:        m.Round,
		MatchNumber:  m.MatchNumber,
		Position:     m.Position,
		Player1ID:    string(m.Player1ID),
		Player2ID:    string(m.Player2ID),
		Games:        games,
		Status:       string(m.Status),
		WinnerID:     string(m.WinnerID),
		Player1Games: m.Player1Games,
		Player2Games: m.Player2Games,
		IsBye:        m.IsBye,
		NextMatchID:  string(m.NextMatchID),
		NextSlot:     m.NextSlot,
	}
}

// MatchesFromModel converts a slice of matches
func MatchesFromModel(matches []*model.Match) []Match {
	result := make([]Match, len(matches))
	for i, m := range matches {
		result[i] = MatchFromModel(m)
	}
	return result
}

// GroupStage is the response after drawing groups
type GroupStage struct {
	Stage   Stage   `json:"stage"`
	Groups  []Group `json:"groups"`
	Matches []Match `json:"matches"`
}

// GroupStageFromResult converts a drawn group stage
func GroupStageFromResult(gs *tournament.GroupStage) GroupStage {
	return GroupStage{
		Stage:   StageFromModel(gs.Stage),
		Groups:  GroupsFromModel(gs.Groups),
		Matches: MatchesFromModel(gs.Matches),
	}
}

// Standing is one row of a group table
type Standing struct {
	Rank             int    `json:"rank"`
	PlayerID         string `json:"player_id"`
	Name             string `json:"name"`
	MatchesPlayed    int    `json:"matches_played"`
	Wins             int    `json:"wins"`
	Losses           int    `json:"losses"`
	GamesWon         int    `json:"games_won"`
	GamesLost        int    `json:"games_lost"`
	PointsScored     int    `json:"points_scored"`
	PointsConceded   int    `json:"points_conceded"`
	GameDifference   int    `json:"game_difference"`
	PointsDifference int    `json:"points_difference"`
	Advances         bool   `json:"advances"`
	Tiebreak         string `json:"tiebreak,omitempty"` // How this row was separated from the one below
}

// GroupTable is a group with its ranked standings
type GroupTable struct {
	Group     Group      `json:"group"`
	Standings []Standing `json:"standings"`
	Completed int        `json:"completed"`
	Total     int        `json:"total"`
	AllDone   bool       `json:"all_done"`
}

// StageStandings lists every group table of a stage
type StageStandings struct {
	Stage  Stage        `json:"stage"`
	Tables []GroupTable `json:"tables"`
}

func standingFromModel(row model.PlayerStanding, reason *standings.TiebreakReason) Standing {
	s := Standing{
		Rank:             row.Rank,
		PlayerID:         string(row.PlayerID),
		Name:             row.Name,
		MatchesPlayed:    row.MatchesPlayed,
		Wins:             row.Wins,
		Losses:           row.Losses,
		GamesWon:         row.GamesWon,
		GamesLost:        row.GamesLost,
		PointsScored:     row.PointsScored,
		PointsConceded:   row.PointsConceded,
		GameDifference:   row.GameDifference,
		PointsDifference: row.PointsDifference,
		Advances:         row.Advances,
	}
	if reason != nil {
		s.Tiebreak = reason.Description
	}
	return s
}

// StageStandingsFromResult converts computed standings
func StageStandingsFromResult(st *tournament.StageStandings) StageStandings {
	tables := make([]GroupTable, len(st.Tables))
	for i, t := range st.Tables {
		rows := make([]Standing, len(t.Standings))
		for j, row := range t.Standings {
			var reason *standings.TiebreakReason
			if j < len(t.Reasons) {
				reason = &t.Reasons[j]
			}
			rows[j] = standingFromModel(row, reason)
		}
		tables[i] = GroupTable{
			Group:     GroupFromModel(t.Group),
			Standings: rows,
			Completed: t.Progress.Completed,
			Total:     t.Progress.Total,
			AllDone:   t.Progress.AllDone,
		}
	}
	return StageStandings{Stage: StageFromModel(st.Stage), Tables: tables}
}

// Qualifier is a player advancing into a knockout
type Qualifier struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	GroupID    string `json:"group_id"`
	GroupRank  int    `json:"group_rank"`
	KOSeed     int    `json:"ko_seed"`
	BestPlaced bool   `json:"best_placed,omitempty"`
}

// Knockout is the response after generating a knockout
type Knockout struct {
	Stage       Stage       `json:"stage"`
	BracketSize int         `json:"bracket_size"`
	ByeCount    int         `json:"bye_count"`
	TotalRounds int         `json:"total_rounds"`
	Rounds      []string    `json:"rounds"`
	Matches     []Match     `json:"matches"`
	Qualifiers  []Qualifier `json:"qualifiers,omitempty"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// KnockoutFromResult converts a generated knockout
func KnockoutFromResult(ko *tournament.Knockout) Knockout {
	rounds := make([]string, ko.Bracket.TotalRounds)
	for i := range rounds {
		rounds[i] = bracket.RoundName(i+1, ko.Bracket.TotalRounds)
	}

	var qualifiers []Qualifier
	for _, q := range ko.Qualifiers {
		qualifiers = append(qualifiers, qualifierFromModel(q))
	}
	var warnings []string
	for _, w := range ko.Warnings {
		warnings = append(warnings, w.String())
	}

	return Knockout{
		Stage:       StageFromModel(ko.Stage),
		BracketSize: ko.Bracket.BracketSize,
		ByeCount:    ko.Bracket.ByeCount,
		TotalRounds: ko.Bracket.TotalRounds,
		Rounds:      rounds,
		Matches:     MatchesFromModel(ko.Matches),
		Qualifiers:  qualifiers,
		Warnings:    warnings,
	}
}

func qualifierFromModel(q qualifier.Qualifier) Qualifier {
	return Qualifier{
		PlayerID:   string(q.PlayerID),
		Name:       q.Name,
		GroupID:    string(q.GroupID),
		GroupRank:  q.GroupRank,
		KOSeed:     q.KOSeed,
		BestPlaced: q.BestPlaced,
	}
}

// ScoreValidation is the result of the advisory score check
type ScoreValidation struct {
	Valid  bool                 `json:"valid"`
	Errors []scoring.FieldError `json:"errors,omitempty"`
}

// ScoreValidationFromResult converts a scoring.ValidationResult
func ScoreValidationFromResult(r scoring.ValidationResult) ScoreValidation {
	return ScoreValidation{Valid: r.Valid, Errors: r.Errors}
}
