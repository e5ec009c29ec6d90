package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/request"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/tournament"
)

// MatchHandler handles match and score endpoints
type MatchHandler struct {
	controller *tournament.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(controller *tournament.Controller) *MatchHandler {
	return &MatchHandler{controller: controller}
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["match_id"])
}

func gameNumber(r *http.Request) (int, error) {
	n, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		return 0, NewInvalidRequestError("Game number must be an integer")
	}
	return n, nil
}

// Get handles GET /api/v1/matches/{match_id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.controller.GetMatch(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// PutGame handles PUT /api/v1/matches/{match_id}/games/{number}
func (h *MatchHandler) PutGame(w http.ResponseWriter, r *http.Request) {
	number, err := gameNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.GameScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Score1 == nil || req.Score2 == nil {
		WriteError(w, NewInvalidRequestError("Both score1 and score2 are required"))
		return
	}

	m, err := h.controller.RecordGameScore(r.Context(), matchID(r), number, *req.Score1, *req.Score2)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// DeleteGame handles DELETE /api/v1/matches/{match_id}/games/{number}
func (h *MatchHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	number, err := gameNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.controller.DeleteGameScore(r.Context(), matchID(r), number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// ValidateScore handles POST /api/v1/scores/validate
func (h *MatchHandler) ValidateScore(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	result := h.controller.ValidateScore(req.Score1, req.Score2)
	response.JSON(w, http.StatusOK, response.ScoreValidationFromResult(result))
}
