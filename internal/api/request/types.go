package request

// CreateTournamentRequest is the request body for creating a tournament
type CreateTournamentRequest struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
}

// AddPlayerRequest is the request body for registering one player
type AddPlayerRequest struct {
	Name string `json:"name"`
	Club string `json:"club,omitempty"`
	Seed *int   `json:"seed,omitempty"`
}

// ImportPlayersRequest carries an entry list. Either Players is set, or
// Content holds a raw list in Format (text, yaml or html).
type ImportPlayersRequest struct {
	Players []AddPlayerRequest `json:"players,omitempty"`
	Format  string             `json:"format,omitempty"`
	Content string             `json:"content,omitempty"`
}

// CreateGroupStageRequest is the request body for drawing groups.
// Zero values fall back to the default stage config.
type CreateGroupStageRequest struct {
	NumberOfGroups int    `json:"number_of_groups,omitempty"`
	AdvanceCount   int    `json:"advance_count,omitempty"`
	MatchFormat    string `json:"match_format,omitempty"`
	AllowBestThird bool   `json:"allow_best_third,omitempty"`
	BestThirdCount int    `json:"best_third_count,omitempty"`
}

// GameScoreRequest is the request body for entering one game
type GameScoreRequest struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

// ValidateScoreRequest is the request body for the advisory score check
type ValidateScoreRequest struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}
