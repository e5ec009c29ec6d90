package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage/storagetest"
)

func newTestStorage(t *testing.T, mini *miniredis.Miniredis, cfg Config) *Storage {
	client := redis.NewClient(&redis.Options{
		Addr: mini.Addr(),
	})
	return NewWithClient(client, cfg)
}

func TestStorageContract(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		Factory: func(t *testing.T) storage.Storage {
			return newTestStorage(t, miniredis.RunT(t), DefaultConfig())
		},
	})
}

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	cfg := DefaultConfig()
	cfg.DataTTL = time.Hour

	s.storage = newTestStorage(s.T(), s.mini, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestKeysCarryTTL() {
	err := s.storage.SaveTournament(s.ctx, &model.Tournament{ID: "t1", Code: "ABC123"})
	s.Require().NoError(err)

	s.True(s.mini.Exists("tts:tournament:t1"))
	s.Equal(time.Hour, s.mini.TTL("tts:tournament:t1"))
	s.Equal(time.Hour, s.mini.TTL("tts:idx:tournament_code:ABC123"))
}

func (s *StorageSuite) TestMatchIndexMaintained() {
	err := s.storage.SaveMatches(s.ctx, []*model.Match{
		{ID: "m1", StageID: "s1"},
		{ID: "m2", StageID: "s1"},
	})
	s.Require().NoError(err)

	members, err := s.mini.Members("tts:idx:matches_for_stage:s1")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"m1", "m2"}, members)

	s.Require().NoError(s.storage.DeleteMatchesForStage(s.ctx, "s1"))
	s.False(s.mini.Exists("tts:idx:matches_for_stage:s1"))
	s.False(s.mini.Exists("tts:match:m1"))
}

func (s *StorageSuite) TestExpiredRecordsSkipped() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", TournamentID: "t1"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p2", TournamentID: "t1"}))

	s.mini.Del("tts:player:p1")

	players, err := s.storage.GetPlayersForTournament(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID("p2"), players[0].ID)
}

func (s *StorageSuite) TestEmptySaveMatchesIsNoop() {
	s.NoError(s.storage.SaveMatches(s.ctx, nil))
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"
	_, err := New(cfg)
	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()
	st, err := New(cfg)
	s.Require().NoError(err)
	s.NoError(st.Close())
}
