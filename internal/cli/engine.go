package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/random"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/roster"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/bracket"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/roundrobin"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/services/scoring"
)

// ScheduleResult is an offline round-robin draw
type ScheduleResult struct {
	Fixtures []ScheduleFixture `json:"fixtures"`
}

// ScheduleFixture is one pairing of an offline draw
type ScheduleFixture struct {
	Round       int    `json:"round"`
	MatchNumber int    `json:"match_number,omitempty"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2,omitempty"`
	Bye         bool   `json:"bye,omitempty"`
}

// BracketResult is an offline knockout draw
type BracketResult struct {
	BracketSize int            `json:"bracket_size"`
	ByeCount    int            `json:"bye_count"`
	TotalRounds int            `json:"total_rounds"`
	Matches     []BracketMatch `json:"matches"`
}

// BracketMatch is one match of an offline knockout draw
type BracketMatch struct {
	Round   int    `json:"round"`
	Name    string `json:"name"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Bye     bool   `json:"bye,omitempty"`
}

func newEngineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engine",
		Short: "Offline draws and score checks (no server needed)",
	}

	cmd.AddCommand(newEngineValidateCmd())
	cmd.AddCommand(newEngineScheduleCmd())
	cmd.AddCommand(newEngineBracketCmd())

	return cmd
}

func newEngineValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <score1> <score2>",
		Short: "Check a single game score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s1, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%q is not a number", args[0])
			}
			s2, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%q is not a number", args[1])
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(response.ScoreValidationFromResult(scoring.ValidateGameScore(s1, s2)))
			return nil
		},
	}
}

func newEngineScheduleCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "schedule [entry-file]",
		Short: "Print a round-robin schedule for one group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := enginePlayers(args, count)
			if err != nil {
				return err
			}

			ids := make([]model.PlayerID, len(players))
			for i, p := range players {
				ids[i] = p.ID
			}
			fixtures, err := roundrobin.GenerateGroupSchedule(ids)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(scheduleResult(fixtures))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "players", 0, "Draw for N numbered players instead of an entry file")

	return cmd
}

func scheduleResult(fixtures []roundrobin.Fixture) ScheduleResult {
	result := ScheduleResult{Fixtures: make([]ScheduleFixture, 0, len(fixtures))}
	number := 0
	for _, f := range fixtures {
		sf := ScheduleFixture{Round: f.Round, Player1: string(f.Player1ID), Bye: f.IsBye}
		if !f.IsBye {
			number++
			sf.MatchNumber = number
			sf.Player2 = string(f.Player2ID)
		}
		result.Fixtures = append(result.Fixtures, sf)
	}
	return result
}

func newEngineBracketCmd() *cobra.Command {
	var count int
	var shuffleSeed uint64

	cmd := &cobra.Command{
		Use:   "bracket [entry-file]",
		Short: "Print a seeded knockout draw",
		Long: `Print a seeded knockout draw. Seeded entries take the standard
seed positions; unseeded entries are shuffled into the remaining slots.
Pass --shuffle-seed for a repeatable draw.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := enginePlayers(args, count)
			if err != nil {
				return err
			}

			var rnd random.Random
			if shuffleSeed != 0 {
				rnd = random.NewSeeded(shuffleSeed)
			}
			b, err := bracket.GenerateBracket(players, rnd)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(bracketResult(b))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "players", 0, "Draw N numbered players seeded 1..N instead of an entry file")
	cmd.Flags().Uint64Var(&shuffleSeed, "shuffle-seed", 0, "Seed for placing unseeded entries")

	return cmd
}

func bracketResult(b *bracket.Bracket) BracketResult {
	result := BracketResult{
		BracketSize: b.BracketSize,
		ByeCount:    b.ByeCount,
		TotalRounds: b.TotalRounds,
	}
	for _, m := range bracket.BuildRounds(b) {
		bm := BracketMatch{
			Round:   m.Round,
			Name:    m.Name,
			Player1: string(m.Player1ID),
			Player2: string(m.Player2ID),
			Bye:     m.IsBye,
		}
		if m.IsBye {
			bm.Player1, bm.Player2 = string(m.WinnerID), ""
		}
		result.Matches = append(result.Matches, bm)
	}
	return result
}

// enginePlayers reads an entry file, or numbers count players when no file is
// given. Player ids are their names so draws print readably.
func enginePlayers(args []string, count int) ([]model.Player, error) {
	if len(args) == 0 {
		if count <= 0 {
			return nil, fmt.Errorf("pass an entry file or --players")
		}
		players := make([]model.Player, count)
		for i := range players {
			name := fmt.Sprintf("Player %d", i+1)
			players[i] = model.Player{ID: model.PlayerID(name), Name: name, Seed: model.SeedPtr(i + 1)}
		}
		return players, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	entries, err := roster.Parse(roster.FormatFromFilename(args[0]), f)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, len(entries))
	for i, e := range entries {
		players[i] = model.Player{ID: model.PlayerID(e.Name), Name: e.Name, Club: e.Club, Seed: e.Seed}
	}
	return players, nil
}
