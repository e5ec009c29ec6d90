package memory

import (
	"context"
	"sync"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	tournaments map[model.TournamentID]*model.Tournament
	codeIndex   map[string]model.TournamentID
	players     map[model.PlayerID]*model.Player
	stages      map[model.StageID]*model.Stage
	groups      map[model.StageID][]*model.Group
	matches     map[model.MatchID]*model.Match
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tournaments: make(map[model.TournamentID]*model.Tournament),
		codeIndex:   make(map[string]model.TournamentID),
		players:     make(map[model.PlayerID]*model.Player),
		stages:      make(map[model.StageID]*model.Stage),
		groups:      make(map[model.StageID][]*model.Group),
		matches:     make(map[model.MatchID]*model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, tournament *model.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *tournament
	s.tournaments[t.ID] = &t
	if t.Code != "" {
		s.codeIndex[t.Code] = t.ID
	}
	return nil
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	c := *t
	return &c, nil
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		c := *t
		result = append(result, &c)
	}
	storage.SortTournaments(result)
	return result, nil
}

func (s *Storage) TournamentCodeExists(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codeIndex[code]
	return ok, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) GetPlayersForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Player
	for _, p := range s.players {
		if p.TournamentID == tournamentID {
			result = append(result, p.Clone())
		}
	}
	storage.SortPlayers(result)
	return result, nil
}

// Stage operations

func (s *Storage) SaveStage(ctx context.Context, stage *model.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *stage
	s.stages[c.ID] = &c
	return nil
}

func (s *Storage) GetStage(ctx context.Context, id model.StageID) (*model.Stage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stage, ok := s.stages[id]
	if !ok {
		return nil, model.ErrStageNotFound
	}
	c := *stage
	return &c, nil
}

func (s *Storage) GetStagesForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Stage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Stage
	for _, stage := range s.stages {
		if stage.TournamentID == tournamentID {
			c := *stage
			result = append(result, &c)
		}
	}
	storage.SortStages(result)
	return result, nil
}

// Group operations

func (s *Storage) SaveGroups(ctx context.Context, stageID model.StageID, groups []*model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]*model.Group, 0, len(groups))
	for _, g := range groups {
		stored = append(stored, g.Clone())
	}
	s.groups[stageID] = stored
	return nil
}

func (s *Storage) GetGroupsForStage(ctx context.Context, stageID model.StageID) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Group, 0, len(s.groups[stageID]))
	for _, g := range s.groups[stageID] {
		result = append(result, g.Clone())
	}
	storage.SortGroups(result)
	return result, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = match.Clone()
	return nil
}

func (s *Storage) SaveMatches(ctx context.Context, matches []*model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		s.matches[m.ID] = m.Clone()
	}
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match.Clone(), nil
}

func (s *Storage) GetMatchesForStage(ctx context.Context, stageID model.StageID) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Match
	for _, m := range s.matches {
		if m.StageID == stageID {
			result = append(result, m.Clone())
		}
	}
	storage.SortMatches(result)
	return result, nil
}

func (s *Storage) DeleteMatchesForStage(ctx context.Context, stageID model.StageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.matches {
		if m.StageID == stageID {
			delete(s.matches, id)
		}
	}
	return nil
}
