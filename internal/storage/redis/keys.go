package redis

import (
	"fmt"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// Key prefix for all tournament data
const keyPrefix = "tts"

// tournamentKey returns the Redis key for a Tournament
func tournamentKey(id model.TournamentID) string {
	return fmt.Sprintf("%s:tournament:%s", keyPrefix, id)
}

// tournamentsIndexKey returns the Redis key for the SET of all tournament ids
func tournamentsIndexKey() string {
	return fmt.Sprintf("%s:idx:tournaments", keyPrefix)
}

// tournamentCodeKey returns the Redis key for the code -> tournament_id index
func tournamentCodeKey(code string) string {
	return fmt.Sprintf("%s:idx:tournament_code:%s", keyPrefix, code)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersForTournamentKey returns the Redis key for the SET of players in a tournament
func playersForTournamentKey(id model.TournamentID) string {
	return fmt.Sprintf("%s:idx:players_for_tournament:%s", keyPrefix, id)
}

// stageKey returns the Redis key for a Stage
func stageKey(id model.StageID) string {
	return fmt.Sprintf("%s:stage:%s", keyPrefix, id)
}

// stagesForTournamentKey returns the Redis key for the SET of stages in a tournament
func stagesForTournamentKey(id model.TournamentID) string {
	return fmt.Sprintf("%s:idx:stages_for_tournament:%s", keyPrefix, id)
}

// groupsKey returns the Redis key holding every group of a stage
func groupsKey(stageID model.StageID) string {
	return fmt.Sprintf("%s:groups:%s", keyPrefix, stageID)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchesForStageKey returns the Redis key for the SET of matches in a stage
func matchesForStageKey(stageID model.StageID) string {
	return fmt.Sprintf("%s:idx:matches_for_stage:%s", keyPrefix, stageID)
}
