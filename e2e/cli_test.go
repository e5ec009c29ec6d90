package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/factory"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "ttsadhanam-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ttsadhanam")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func runJSON[T any](t *testing.T, r *cliRunner, args ...string) T {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)

	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:               testutil.NopLogger(),
		TournamentController: app.TournamentController,
	})

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(router, cfg, testutil.NopLogger())
	require.NoError(t, server.Listen())

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	return &testServer{
		addr: "http://" + server.Addr(),
		shutdown: func() {
			assert.NoError(t, server.Shutdown(context.Background()))
			assert.NoError(t, <-done)
			_ = app.Close()
		},
	}
}

// Response types for JSON parsing
type tournamentResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Format string `json:"format"`
}

type playerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seed *int   `json:"seed"`
}

type matchResponse struct {
	ID        string `json:"id"`
	Round     int    `json:"round"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
	Status    string `json:"status"`
	WinnerID  string `json:"winner_id"`
	IsBye     bool   `json:"is_bye"`
}

type groupStageResponse struct {
	Stage struct {
		ID string `json:"id"`
	} `json:"stage"`
	Groups []struct {
		Name string `json:"name"`
	} `json:"groups"`
	Matches []matchResponse `json:"matches"`
}

type stageResponse struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

type knockoutResponse struct {
	Stage       stageResponse   `json:"stage"`
	BracketSize int             `json:"bracket_size"`
	Matches     []matchResponse `json:"matches"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	resp := runJSON[healthResponse](t, cli, "health")
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_TournamentAndPlayers(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	tour := runJSON[tournamentResponse](t, cli, "tournament", "create", "--name", "City Open", "--format", "bo3")
	assert.Equal(t, "City Open", tour.Name)
	assert.Len(t, tour.Code, 6)

	got := runJSON[tournamentResponse](t, cli, "tournament", "get", tour.ID)
	assert.Equal(t, tour.Code, got.Code)

	p := runJSON[playerResponse](t, cli, "player", "add", tour.ID, "--name", "Ma Long", "--seed", "1")
	require.NotNil(t, p.Seed)
	assert.Equal(t, 1, *p.Seed)

	entries := filepath.Join(t.TempDir(), "entries.yaml")
	require.NoError(t, os.WriteFile(entries, []byte("- name: Fan Zhendong\n  seed: 2\n- name: Timo Boll\n  club: Dusseldorf\n"), 0o600))
	imported := runJSON[[]playerResponse](t, cli, "player", "import", tour.ID, entries)
	assert.Len(t, imported, 2)

	all := runJSON[[]playerResponse](t, cli, "player", "list", tour.ID)
	assert.Len(t, all, 3)

	found := runJSON[[]playerResponse](t, cli, "player", "find", tour.ID, "boll")
	require.Len(t, found, 1)
	assert.Equal(t, "Timo Boll", found[0].Name)

	// Unknown tournaments fail with the API's message
	output, err := cli.run("tournament", "get", "missing")
	assert.Error(t, err)
	assert.Contains(t, output, "TOURNAMENT_NOT_FOUND")
}

func TestCLI_FullTournamentFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	tour := runJSON[tournamentResponse](t, cli, "tournament", "create", "--name", "Club Champs", "--format", "bo3")
	for i := 1; i <= 4; i++ {
		runJSON[playerResponse](t, cli, "player", "add", tour.ID, "--name", fmt.Sprintf("Player %d", i), "--seed", fmt.Sprint(i))
	}

	// One group of four, two advance
	stageCfg := filepath.Join(t.TempDir(), "stage.yaml")
	require.NoError(t, os.WriteFile(stageCfg, []byte("groups: 1\nadvance: 2\nformat: bo3\n"), 0o600))
	gs := runJSON[groupStageResponse](t, cli, "stage", "groups", tour.ID, "--config", stageCfg)
	require.Len(t, gs.Groups, 1)
	require.Len(t, gs.Matches, 6)

	// Player 1 of every fixture wins in straight games
	for _, m := range gs.Matches {
		played := runJSON[matchResponse](t, cli, "match", "sheet", m.ID, "11-7 11-9")
		assert.Equal(t, "complete", played.Status)
		assert.Equal(t, m.Player1ID, played.WinnerID)
	}

	// A correction through score and clear reopens then decides again
	first := gs.Matches[0]
	reopened := runJSON[matchResponse](t, cli, "match", "clear", first.ID, "2")
	assert.Equal(t, "live", reopened.Status)
	redone := runJSON[matchResponse](t, cli, "match", "score", first.ID, "2", "12", "10")
	assert.Equal(t, "complete", redone.Status)

	closed := runJSON[stageResponse](t, cli, "stage", "close", gs.Stage.ID)
	assert.Equal(t, "closed", closed.Status)

	ko := runJSON[knockoutResponse](t, cli, "stage", "knockout", gs.Stage.ID)
	assert.Equal(t, 2, ko.BracketSize)
	require.Len(t, ko.Matches, 1)

	final := runJSON[matchResponse](t, cli, "match", "sheet", ko.Matches[0].ID, "11-5", "5-11", "11-3")
	assert.Equal(t, "complete", final.Status)
	assert.Equal(t, ko.Matches[0].Player1ID, final.WinnerID)

	stages := runJSON[[]stageResponse](t, cli, "stage", "list", tour.ID)
	assert.Len(t, stages, 2)
}

func TestCLI_InvalidScoreShowsDetails(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	tour := runJSON[tournamentResponse](t, cli, "tournament", "create", "--name", "Open")
	runJSON[playerResponse](t, cli, "player", "add", tour.ID, "--name", "A")
	runJSON[playerResponse](t, cli, "player", "add", tour.ID, "--name", "B")

	ko := runJSON[knockoutResponse](t, cli, "knockout", "generate", tour.ID)
	require.Len(t, ko.Matches, 1)

	output, err := cli.run("match", "score", ko.Matches[0].ID, "1", "11", "10")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_SCORE")
}
