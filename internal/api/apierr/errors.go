package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
)

// APIError represents an API error response
type APIError struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Details []scoring.FieldError `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidScore        = "INVALID_SCORE"
	CodeInvalidStageConfig  = "INVALID_STAGE_CONFIG"
	CodeInvalidMatchFormat  = "INVALID_MATCH_FORMAT"
	CodeInvalidSeed         = "INVALID_SEED"
	CodeInvalidRoster       = "INVALID_ROSTER"
	CodeTournamentNotFound  = "TOURNAMENT_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeStageNotFound       = "STAGE_NOT_FOUND"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeTooFewPlayers       = "TOO_FEW_PLAYERS"
	CodeTooManyPlayers      = "TOO_MANY_PLAYERS"
	CodeGroupTooSmall       = "GROUP_TOO_SMALL"
	CodeGroupTooLarge       = "GROUP_TOO_LARGE"
	CodeDuplicatePlayer     = "DUPLICATE_PLAYER"
	CodeNoPlayers           = "NO_PLAYERS"
	CodeStageClosed         = "STAGE_CLOSED"
	CodeStageNotClosed      = "STAGE_NOT_CLOSED"
	CodeGroupsIncomplete    = "GROUPS_INCOMPLETE"
	CodeNotEnoughQualifiers = "NOT_ENOUGH_QUALIFIERS"
	CodeWrongStageKind      = "WRONG_STAGE_KIND"
	CodeMatchNotPlayable    = "MATCH_NOT_PLAYABLE"
	CodeNextMatchStarted    = "NEXT_MATCH_STARTED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

func unprocessable(code string, err error) *httpError {
	return &httpError{http.StatusUnprocessableEntity, APIError{Code: code, Message: err.Error()}}
}

func notFound(code, message string) *httpError {
	return &httpError{http.StatusNotFound, APIError{Code: code, Message: message}}
}

func conflict(code string, err error) *httpError {
	return &httpError{http.StatusConflict, APIError{Code: code, Message: err.Error()}}
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	var scoreErr *scoring.ScoreError
	if errors.As(err, &scoreErr) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodeInvalidScore,
			Message: scoreErr.Error(),
			Details: scoreErr.Errors,
		}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrTournamentNotFound):
		return notFound(CodeTournamentNotFound, "Tournament not found")
	case errors.Is(err, model.ErrPlayerNotFound):
		return notFound(CodePlayerNotFound, "Player not found")
	case errors.Is(err, model.ErrStageNotFound):
		return notFound(CodeStageNotFound, "Stage not found")
	case errors.Is(err, model.ErrMatchNotFound):
		return notFound(CodeMatchNotFound, "Match not found")
	case errors.Is(err, model.ErrGameNotFound):
		return notFound(CodeGameNotFound, "Game not found")

	case errors.Is(err, model.ErrInvalidName), errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: err.Error()}}
	case errors.Is(err, model.ErrInvalidRoster):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRoster, Message: err.Error()}}
	case errors.Is(err, model.ErrInvalidSeed):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidSeed, Message: err.Error()}}
	case errors.Is(err, model.ErrInvalidMatchFormat):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidMatchFormat, Message: err.Error()}}
	case errors.Is(err, model.ErrInvalidStageConfig):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidStageConfig, Message: err.Error()}}

	// Domain limits
	case errors.Is(err, model.ErrTooFewPlayers):
		return unprocessable(CodeTooFewPlayers, err)
	case errors.Is(err, model.ErrTooManyPlayers):
		return unprocessable(CodeTooManyPlayers, err)
	case errors.Is(err, model.ErrGroupTooSmall):
		return unprocessable(CodeGroupTooSmall, err)
	case errors.Is(err, model.ErrGroupTooLarge):
		return unprocessable(CodeGroupTooLarge, err)
	case errors.Is(err, model.ErrDuplicatePlayer):
		return unprocessable(CodeDuplicatePlayer, err)
	case errors.Is(err, model.ErrNoPlayers):
		return unprocessable(CodeNoPlayers, err)
	case errors.Is(err, model.ErrNotEnoughQualifiers):
		return unprocessable(CodeNotEnoughQualifiers, err)

	// Preconditions
	case errors.Is(err, model.ErrStageClosed):
		return conflict(CodeStageClosed, err)
	case errors.Is(err, model.ErrStageNotClosed):
		return conflict(CodeStageNotClosed, err)
	case errors.Is(err, model.ErrGroupsIncomplete):
		return conflict(CodeGroupsIncomplete, err)
	case errors.Is(err, model.ErrWrongStageKind):
		return conflict(CodeWrongStageKind, err)
	case errors.Is(err, model.ErrMatchNotPlayable):
		return conflict(CodeMatchNotPlayable, err)
	case errors.Is(err, model.ErrNextMatchStarted):
		return conflict(CodeNextMatchStarted, err)

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewRateLimitedError creates a too many requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{Code: CodeRateLimited, Message: "Too many requests"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
