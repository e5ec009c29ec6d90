package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/request"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/roster"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/tournament"
)

// TournamentHandler handles tournament and player endpoints
type TournamentHandler struct {
	controller *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(controller *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{controller: controller}
}

func tournamentID(r *http.Request) model.TournamentID {
	return model.TournamentID(mux.Vars(r)["tournament_id"])
}

// Create handles POST /api/v1/tournaments
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	t, err := h.controller.CreateTournament(r.Context(), req.Name, model.MatchFormat(req.Format))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TournamentFromModel(t))
}

// List handles GET /api/v1/tournaments
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.controller.ListTournaments(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.Tournament, len(tournaments))
	for i, t := range tournaments {
		result[i] = response.TournamentFromModel(t)
	}
	response.JSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/tournaments/{tournament_id}
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.GetTournament(r.Context(), tournamentID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// AddPlayer handles POST /api/v1/tournaments/{tournament_id}/players
func (h *TournamentHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	p, err := h.controller.AddPlayer(r.Context(), tournamentID(r), roster.Entry{Name: req.Name, Club: req.Club, Seed: req.Seed})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// ImportPlayers handles POST /api/v1/tournaments/{tournament_id}/players/import
func (h *TournamentHandler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	var req request.ImportPlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	var entries []roster.Entry
	if req.Content != "" {
		parsed, err := roster.Parse(roster.Format(req.Format), strings.NewReader(req.Content))
		if err != nil {
			WriteError(w, err)
			return
		}
		entries = parsed
	}
	for _, p := range req.Players {
		entries = append(entries, roster.Entry{Name: p.Name, Club: p.Club, Seed: p.Seed})
	}

	players, err := h.controller.ImportPlayers(r.Context(), tournamentID(r), entries)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayersFromModel(players))
}

// ListPlayers handles GET /api/v1/tournaments/{tournament_id}/players
// An optional ?q= narrows the list by fuzzy name match.
func (h *TournamentHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.controller.FindPlayers(r.Context(), tournamentID(r), r.URL.Query().Get("q"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// ListStages handles GET /api/v1/tournaments/{tournament_id}/stages
func (h *TournamentHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.controller.ListStages(r.Context(), tournamentID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StagesFromModel(stages))
}

// CreateGroupStage handles POST /api/v1/tournaments/{tournament_id}/stages/groups
func (h *TournamentHandler) CreateGroupStage(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGroupStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default config
		req = request.CreateGroupStageRequest{}
	}

	cfg := model.DefaultStageConfig()
	if req.NumberOfGroups != 0 {
		cfg.NumberOfGroups = req.NumberOfGroups
	}
	if req.AdvanceCount != 0 {
		cfg.AdvanceCount = req.AdvanceCount
	}
	if req.MatchFormat != "" {
		cfg.MatchFormat = model.MatchFormat(req.MatchFormat)
	}
	cfg.AllowBestThird = req.AllowBestThird
	cfg.BestThirdCount = req.BestThirdCount

	gs, err := h.controller.CreateGroupStage(r.Context(), tournamentID(r), cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GroupStageFromResult(gs))
}

// CreateKnockout handles POST /api/v1/tournaments/{tournament_id}/stages/knockout
// and draws the whole roster into a knockout.
func (h *TournamentHandler) CreateKnockout(w http.ResponseWriter, r *http.Request) {
	ko, err := h.controller.GenerateKnockoutFromRoster(r.Context(), tournamentID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.KnockoutFromResult(ko))
}
