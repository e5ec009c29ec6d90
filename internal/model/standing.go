package model

// PlayerStanding is a derived per-player, per-group aggregate.
// It is recomputed from match facts on demand and never stored.
type PlayerStanding struct {
	PlayerID         PlayerID
	Name             string
	GroupID          GroupID
	MatchesPlayed    int
	Wins             int
	Losses           int
	GamesWon         int
	GamesLost        int
	PointsScored     int
	PointsConceded   int
	GameDifference   int
	PointsDifference int
	Rank             int
	Advances         bool
}
