package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// getJSON loads and decodes a single key, mapping a miss to notFound
func getJSON[T any](ctx context.Context, client *redis.Client, key string, notFound error) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// loadIndexed fetches every record whose id is a member of indexKey
func loadIndexed[T any](ctx context.Context, client *redis.Client, indexKey string, keyFor func(string) string) ([]*T, error) {
	ids, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*T{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFor(id)
	}

	// Fetch all records in one round trip using MGET
	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([]*T, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record may have expired
		}
		str, ok := val.(string)
		if !ok {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			continue // Skip invalid data
		}
		result = append(result, &v)
	}
	return result, nil
}

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, tournament *model.Tournament) error {
	data, err := json.Marshal(tournament)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tournamentKey(tournament.ID), data, s.cfg.DataTTL)
	pipe.SAdd(ctx, tournamentsIndexKey(), string(tournament.ID))
	if tournament.Code != "" {
		pipe.Set(ctx, tournamentCodeKey(tournament.Code), string(tournament.ID), s.cfg.DataTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	return getJSON[model.Tournament](ctx, s.client, tournamentKey(id), model.ErrTournamentNotFound)
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	result, err := loadIndexed[model.Tournament](ctx, s.client, tournamentsIndexKey(), func(id string) string {
		return tournamentKey(model.TournamentID(id))
	})
	if err != nil {
		return nil, err
	}
	storage.SortTournaments(result)
	return result, nil
}

func (s *Storage) TournamentCodeExists(ctx context.Context, code string) (bool, error) {
	exists, err := s.client.Exists(ctx, tournamentCodeKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(player.ID), data, s.cfg.DataTTL)
	pipe.SAdd(ctx, playersForTournamentKey(player.TournamentID), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return getJSON[model.Player](ctx, s.client, playerKey(id), model.ErrPlayerNotFound)
}

func (s *Storage) GetPlayersForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Player, error) {
	result, err := loadIndexed[model.Player](ctx, s.client, playersForTournamentKey(tournamentID), func(id string) string {
		return playerKey(model.PlayerID(id))
	})
	if err != nil {
		return nil, err
	}
	storage.SortPlayers(result)
	return result, nil
}

// Stage operations

func (s *Storage) SaveStage(ctx context.Context, stage *model.Stage) error {
	data, err := json.Marshal(stage)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, stageKey(stage.ID), data, s.cfg.DataTTL)
	pipe.SAdd(ctx, stagesForTournamentKey(stage.TournamentID), string(stage.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStage(ctx context.Context, id model.StageID) (*model.Stage, error) {
	return getJSON[model.Stage](ctx, s.client, stageKey(id), model.ErrStageNotFound)
}

func (s *Storage) GetStagesForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Stage, error) {
	result, err := loadIndexed[model.Stage](ctx, s.client, stagesForTournamentKey(tournamentID), func(id string) string {
		return stageKey(model.StageID(id))
	})
	if err != nil {
		return nil, err
	}
	storage.SortStages(result)
	return result, nil
}

// Group operations

func (s *Storage) SaveGroups(ctx context.Context, stageID model.StageID, groups []*model.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, groupsKey(stageID), data, s.cfg.DataTTL).Err()
}

func (s *Storage) GetGroupsForStage(ctx context.Context, stageID model.StageID) ([]*model.Group, error) {
	data, err := s.client.Get(ctx, groupsKey(stageID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*model.Group{}, nil
		}
		return nil, err
	}

	var groups []*model.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	storage.SortGroups(groups)
	return groups, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	return s.SaveMatches(ctx, []*model.Match{match})
}

func (s *Storage) SaveMatches(ctx context.Context, matches []*model.Match) error {
	if len(matches) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, m := range matches {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		pipe.Set(ctx, matchKey(m.ID), data, s.cfg.DataTTL)
		pipe.SAdd(ctx, matchesForStageKey(m.StageID), string(m.ID))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return getJSON[model.Match](ctx, s.client, matchKey(id), model.ErrMatchNotFound)
}

func (s *Storage) GetMatchesForStage(ctx context.Context, stageID model.StageID) ([]*model.Match, error) {
	result, err := loadIndexed[model.Match](ctx, s.client, matchesForStageKey(stageID), func(id string) string {
		return matchKey(model.MatchID(id))
	})
	if err != nil {
		return nil, err
	}
	storage.SortMatches(result)
	return result, nil
}

func (s *Storage) DeleteMatchesForStage(ctx context.Context, stageID model.StageID) error {
	indexKey := matchesForStageKey(stageID)

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	// Delete all matches and the index in one pipeline
	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, matchKey(model.MatchID(id)))
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}
