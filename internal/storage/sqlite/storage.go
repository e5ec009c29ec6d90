package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// Nested values (stage config, group members, games) are stored as JSON columns.
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tournaments (
		id TEXT PRIMARY KEY,
		code TEXT,
		name TEXT NOT NULL,
		format TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		tournament_id TEXT NOT NULL,
		name TEXT NOT NULL,
		club TEXT NOT NULL DEFAULT '',
		seed INTEGER,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stages (
		id TEXT PRIMARY KEY,
		tournament_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		config TEXT NOT NULL,
		source_stage TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stage_groups (
		id TEXT PRIMARY KEY,
		stage_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		name TEXT NOT NULL,
		player_ids TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		tournament_id TEXT NOT NULL,
		stage_id TEXT NOT NULL,
		group_id TEXT NOT NULL DEFAULT '',
		round INTEGER NOT NULL,
		match_number INTEGER NOT NULL,
		position INTEGER NOT NULL,
		player1_id TEXT NOT NULL DEFAULT '',
		player2_id TEXT NOT NULL DEFAULT '',
		games TEXT NOT NULL,
		status TEXT NOT NULL,
		winner_id TEXT NOT NULL DEFAULT '',
		player1_games INTEGER NOT NULL,
		player2_games INTEGER NOT NULL,
		is_bye INTEGER NOT NULL,
		next_match_id TEXT NOT NULL DEFAULT '',
		next_slot INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_code ON tournaments (code) WHERE code <> ''`,
	`CREATE INDEX IF NOT EXISTS idx_players_tournament ON players (tournament_id)`,
	`CREATE INDEX IF NOT EXISTS idx_stages_tournament ON stages (tournament_id)`,
	`CREATE INDEX IF NOT EXISTS idx_groups_stage ON stage_groups (stage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_stage ON matches (stage_id)`,
}

// New opens (creating if needed) the database at path and applies the schema
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids "database is locked"
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.initDatabase(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *Storage) initDatabase(ctx context.Context) error {
	for _, query := range schema {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(timeLayout, raw)
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// Tournament operations

const tournamentColumns = `id, code, name, format, created_at, updated_at`

func scanTournament(row scanner) (*model.Tournament, error) {
	var t model.Tournament
	var created, updated string
	if err := row.Scan(&t.ID, &t.Code, &t.Name, &t.Format, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) SaveTournament(ctx context.Context, tournament *model.Tournament) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tournaments (`+tournamentColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code, name = excluded.name, format = excluded.format,
			created_at = excluded.created_at, updated_at = excluded.updated_at`,
		tournament.ID, tournament.Code, tournament.Name, tournament.Format,
		formatTime(tournament.CreatedAt), formatTime(tournament.UpdatedAt),
	)
	return err
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = ?`, id)
	t, err := scanTournament(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTournamentNotFound
	}
	return t, err
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	storage.SortTournaments(result)
	return result, nil
}

func (s *Storage) TournamentCodeExists(ctx context.Context, code string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments WHERE code = ?`, code).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Player operations

const playerColumns = `id, tournament_id, name, club, seed, created_at`

func scanPlayer(row scanner) (*model.Player, error) {
	var p model.Player
	var seed sql.NullInt64
	var created string
	if err := row.Scan(&p.ID, &p.TournamentID, &p.Name, &p.Club, &seed, &created); err != nil {
		return nil, err
	}
	if seed.Valid {
		p.Seed = model.SeedPtr(int(seed.Int64))
	}
	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	var seed sql.NullInt64
	if player.Seed != nil {
		seed = sql.NullInt64{Int64: int64(*player.Seed), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tournament_id = excluded.tournament_id, name = excluded.name, club = excluded.club,
			seed = excluded.seed, created_at = excluded.created_at`,
		player.ID, player.TournamentID, player.Name, player.Club, seed, formatTime(player.CreatedAt),
	)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	return p, err
}

func (s *Storage) GetPlayersForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE tournament_id = ?`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	storage.SortPlayers(result)
	return result, nil
}

// Stage operations

const stageColumns = `id, tournament_id, kind, status, config, source_stage, created_at, updated_at`

func scanStage(row scanner) (*model.Stage, error) {
	var st model.Stage
	var config, created, updated string
	if err := row.Scan(&st.ID, &st.TournamentID, &st.Kind, &st.Status, &config, &st.SourceStage, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(config), &st.Config); err != nil {
		return nil, fmt.Errorf("decode stage config: %w", err)
	}
	var err error
	if st.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if st.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Storage) SaveStage(ctx context.Context, stage *model.Stage) error {
	config, err := json.Marshal(stage.Config)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO stages (`+stageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tournament_id = excluded.tournament_id, kind = excluded.kind, status = excluded.status,
			config = excluded.config, source_stage = excluded.source_stage,
			created_at = excluded.created_at, updated_at = excluded.updated_at`,
		stage.ID, stage.TournamentID, stage.Kind, stage.Status, string(config), stage.SourceStage,
		formatTime(stage.CreatedAt), formatTime(stage.UpdatedAt),
	)
	return err
}

func (s *Storage) GetStage(ctx context.Context, id model.StageID) (*model.Stage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+stageColumns+` FROM stages WHERE id = ?`, id)
	st, err := scanStage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrStageNotFound
	}
	return st, err
}

func (s *Storage) GetStagesForTournament(ctx context.Context, tournamentID model.TournamentID) ([]*model.Stage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+stageColumns+` FROM stages WHERE tournament_id = ?`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Stage
	for rows.Next() {
		st, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	storage.SortStages(result)
	return result, nil
}

// Group operations

func (s *Storage) SaveGroups(ctx context.Context, stageID model.StageID, groups []*model.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stage_groups WHERE stage_id = ?`, stageID); err != nil {
		return err
	}
	for _, g := range groups {
		ids, err := json.Marshal(g.PlayerIDs)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO stage_groups (id, stage_id, number, name, player_ids) VALUES (?, ?, ?, ?, ?)`,
			g.ID, stageID, g.Number, g.Name, string(ids),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) GetGroupsForStage(ctx context.Context, stageID model.StageID) ([]*model.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stage_id, number, name, player_ids FROM stage_groups WHERE stage_id = ?`, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Group
	for rows.Next() {
		var g model.Group
		var ids string
		if err := rows.Scan(&g.ID, &g.StageID, &g.Number, &g.Name, &ids); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ids), &g.PlayerIDs); err != nil {
			return nil, fmt.Errorf("decode group players: %w", err)
		}
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	storage.SortGroups(result)
	return result, nil
}

// Match operations

const matchColumns = `id, tournament_id, stage_id, group_id, round, match_number, position,
	player1_id, player2_id, games, status, winner_id, player1_games, player2_games,
	is_bye, next_match_id, next_slot, updated_at`

func scanMatch(row scanner) (*model.Match, error) {
	var m model.Match
	var games, updated string
	err := row.Scan(&m.ID, &m.TournamentID, &m.StageID, &m.GroupID, &m.Round, &m.MatchNumber, &m.Position,
		&m.Player1ID, &m.Player2ID, &games, &m.Status, &m.WinnerID, &m.Player1Games, &m.Player2Games,
		&m.IsBye, &m.NextMatchID, &m.NextSlot, &updated)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(games), &m.Games); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &m, nil
}

func saveMatch(ctx context.Context, tx *sql.Tx, m *model.Match) error {
	games, err := json.Marshal(m.Games)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO matches (`+matchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TournamentID, m.StageID, m.GroupID, m.Round, m.MatchNumber, m.Position,
		m.Player1ID, m.Player2ID, string(games), m.Status, m.WinnerID, m.Player1Games, m.Player2Games,
		m.IsBye, m.NextMatchID, m.NextSlot, formatTime(m.UpdatedAt),
	)
	return err
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	return s.SaveMatches(ctx, []*model.Match{match})
}

func (s *Storage) SaveMatches(ctx context.Context, matches []*model.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range matches {
		if err := saveMatch(ctx, tx, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMatchNotFound
	}
	return m, err
}

func (s *Storage) GetMatchesForStage(ctx context.Context, stageID model.StageID) ([]*model.Match, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE stage_id = ?`, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	storage.SortMatches(result)
	return result, nil
}

func (s *Storage) DeleteMatchesForStage(ctx context.Context, stageID model.StageID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE stage_id = ?`, stageID)
	return err
}
