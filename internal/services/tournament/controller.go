package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/clock"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/random"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/roster"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
)

const (
	// CodeLength is the length of generated tournament codes
	CodeLength = 6
	// CodeAlphabet is the characters used in tournament codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller runs tournaments: it loads a snapshot from storage, hands it to
// one of the engines and persists the result. Writes to the same tournament
// are serialised.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *keyedMutex
}

// NewController creates a new tournament Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   newKeyedMutex(),
	}
}

func newID() string {
	return uuid.NewString()
}

// CreateTournament creates an empty tournament. An empty format means best of five.
func (c *Controller) CreateTournament(ctx context.Context, name string, format model.MatchFormat) (*model.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidName
	}
	if format == "" {
		format = model.DefaultMatchFormat
	}
	if _, err := scoring.FormatRules(format); err != nil {
		return nil, err
	}

	// Generate unique tournament code
	var code string
	for {
		code = c.random.String(CodeLength, CodeAlphabet)
		exists, err := c.storage.TournamentCodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	now := c.clock.Now()
	t := &model.Tournament{
		ID:        model.TournamentID(newID()),
		Code:      code,
		Name:      name,
		Format:    format,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.logger.Info("tournament created",
		slog.String("tournament_id", string(t.ID)),
		slog.String("code", t.Code),
	)
	return t, nil
}

// GetTournament retrieves a tournament by id
func (c *Controller) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	return c.storage.GetTournament(ctx, id)
}

// ListTournaments returns every tournament, oldest first
func (c *Controller) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	return c.storage.ListTournaments(ctx)
}

// AddPlayer registers one entrant
func (c *Controller) AddPlayer(ctx context.Context, tournamentID model.TournamentID, entry roster.Entry) (*model.Player, error) {
	players, err := c.ImportPlayers(ctx, tournamentID, []roster.Entry{entry})
	if err != nil {
		return nil, err
	}
	return players[0], nil
}

// ImportPlayers registers a batch of entrants. Every entry is validated
// before anything is saved.
func (c *Controller) ImportPlayers(ctx context.Context, tournamentID model.TournamentID, entries []roster.Entry) ([]*model.Player, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", model.ErrInvalidRoster)
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			if len(entries) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	unlock := c.locks.Lock(tournamentID)
	defer unlock()

	if _, err := c.storage.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	players := make([]*model.Player, 0, len(entries))
	for _, e := range entries {
		p := &model.Player{
			ID:           model.PlayerID(newID()),
			TournamentID: tournamentID,
			Name:         strings.TrimSpace(e.Name),
			Club:         strings.TrimSpace(e.Club),
			CreatedAt:    now,
		}
		if e.Seed != nil {
			p.Seed = model.SeedPtr(*e.Seed)
		}
		if err := c.storage.SavePlayer(ctx, p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	c.logger.Info("players added",
		slog.String("tournament_id", string(tournamentID)),
		slog.Int("count", len(players)),
	)
	return players, nil
}

// ListPlayers returns the tournament's players in registration order
func (c *Controller) ListPlayers(ctx context.Context, tournamentID model.TournamentID) ([]*model.Player, error) {
	if _, err := c.storage.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return c.storage.GetPlayersForTournament(ctx, tournamentID)
}

// FindPlayers returns players whose name fuzzily matches the query, closest first
func (c *Controller) FindPlayers(ctx context.Context, tournamentID model.TournamentID, query string) ([]*model.Player, error) {
	players, err := c.ListPlayers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return players, nil
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	result := make([]*model.Player, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, players[r.OriginalIndex])
	}
	return result, nil
}

func (c *Controller) loadPlayers(ctx context.Context, tournamentID model.TournamentID) ([]model.Player, error) {
	stored, err := c.storage.GetPlayersForTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, len(stored))
	for i, p := range stored {
		players[i] = *p
	}
	return players, nil
}
