package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/tournament"
)

// StageHandler handles stage endpoints
type StageHandler struct {
	controller *tournament.Controller
}

// NewStageHandler creates a new stage handler
func NewStageHandler(controller *tournament.Controller) *StageHandler {
	return &StageHandler{controller: controller}
}

func stageID(r *http.Request) model.StageID {
	return model.StageID(mux.Vars(r)["stage_id"])
}

// Get handles GET /api/v1/stages/{stage_id}
func (h *StageHandler) Get(w http.ResponseWriter, r *http.Request) {
	stage, err := h.controller.GetStage(r.Context(), stageID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StageFromModel(stage))
}

// Groups handles GET /api/v1/stages/{stage_id}/groups
func (h *StageHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.controller.GetGroups(r.Context(), stageID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupsFromModel(groups))
}

// Standings handles GET /api/v1/stages/{stage_id}/standings
func (h *StageHandler) Standings(w http.ResponseWriter, r *http.Request) {
	st, err := h.controller.GetStandings(r.Context(), stageID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StageStandingsFromResult(st))
}

// Matches handles GET /api/v1/stages/{stage_id}/matches
func (h *StageHandler) Matches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.controller.GetMatches(r.Context(), stageID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches))
}

// Close handles POST /api/v1/stages/{stage_id}/close
func (h *StageHandler) Close(w http.ResponseWriter, r *http.Request) {
	stage, err := h.controller.CloseStage(r.Context(), stageID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StageFromModel(stage))
}

// Knockout handles POST /api/v1/stages/{stage_id}/knockout
func (h *StageHandler) Knockout(w http.ResponseWriter, r *http.Request) {
	ko, err := h.controller.GenerateKnockout(r.Context(), stageID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.KnockoutFromResult(ko))
}
