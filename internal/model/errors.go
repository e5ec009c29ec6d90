package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrStageNotFound      = errors.New("stage not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrGameNotFound       = errors.New("game not found")

	// Domain-limit errors
	ErrTooFewPlayers   = errors.New("too few players")
	ErrTooManyPlayers  = errors.New("too many players")
	ErrGroupTooSmall   = errors.New("group has too few players")
	ErrGroupTooLarge   = errors.New("group has too many players")
	ErrDuplicatePlayer = errors.New("player listed more than once")

	// Config errors
	ErrInvalidStageConfig = errors.New("invalid stage config")
	ErrInvalidMatchFormat = errors.New("invalid match format")
	ErrInvalidSeed        = errors.New("invalid seed")
	ErrInvalidRoster      = errors.New("invalid roster")
	ErrInvalidPlayerName  = errors.New("player name is required")
	ErrInvalidName        = errors.New("tournament name is required")

	// Orchestration precondition errors
	ErrStageClosed         = errors.New("stage is closed")
	ErrStageNotClosed      = errors.New("close the group stage before generating the knockout")
	ErrGroupsIncomplete    = errors.New("not every group has finished its matches")
	ErrNotEnoughQualifiers = errors.New("not enough qualifiers to build a knockout")
	ErrWrongStageKind      = errors.New("operation not supported for this stage kind")
	ErrMatchNotPlayable    = errors.New("match is not playable")
	ErrNextMatchStarted    = errors.New("the next match has already started")
	ErrNoPlayers           = errors.New("tournament has no players")
)
