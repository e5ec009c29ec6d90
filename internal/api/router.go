package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/handler"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/middleware"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	TournamentController *tournament.Controller
	RateLimiter          *middleware.RateLimiter // nil disables rate limiting
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tournamentHandler := handler.NewTournamentHandler(cfg.TournamentController)
	stageHandler := handler.NewStageHandler(cfg.TournamentController)
	matchHandler := handler.NewMatchHandler(cfg.TournamentController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware)
	}

	// Tournament and player routes
	api.HandleFunc("/tournaments", tournamentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tournaments", tournamentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{tournament_id}", tournamentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{tournament_id}/players", tournamentHandler.AddPlayer).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{tournament_id}/players", tournamentHandler.ListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{tournament_id}/players/import", tournamentHandler.ImportPlayers).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{tournament_id}/stages", tournamentHandler.ListStages).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{tournament_id}/stages/groups", tournamentHandler.CreateGroupStage).Methods(http.MethodPost)
	api.HandleFunc("/tournaments/{tournament_id}/stages/knockout", tournamentHandler.CreateKnockout).Methods(http.MethodPost)

	// Stage routes
	api.HandleFunc("/stages/{stage_id}", stageHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/stages/{stage_id}/groups", stageHandler.Groups).Methods(http.MethodGet)
	api.HandleFunc("/stages/{stage_id}/standings", stageHandler.Standings).Methods(http.MethodGet)
	api.HandleFunc("/stages/{stage_id}/matches", stageHandler.Matches).Methods(http.MethodGet)
	api.HandleFunc("/stages/{stage_id}/close", stageHandler.Close).Methods(http.MethodPost)
	api.HandleFunc("/stages/{stage_id}/knockout", stageHandler.Knockout).Methods(http.MethodPost)

	// Match routes
	api.HandleFunc("/matches/{match_id}", matchHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches/{match_id}/games/{number}", matchHandler.PutGame).Methods(http.MethodPut)
	api.HandleFunc("/matches/{match_id}/games/{number}", matchHandler.DeleteGame).Methods(http.MethodDelete)
	api.HandleFunc("/scores/validate", matchHandler.ValidateScore).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
