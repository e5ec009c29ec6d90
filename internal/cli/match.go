package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"
	"github.com/spf13/cobra"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match and score entry commands",
	}

	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchScoreCmd())
	cmd.AddCommand(newMatchSheetCmd())
	cmd.AddCommand(newMatchClearCmd())

	return cmd
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <match-id>",
		Short: "Show a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newMatchScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <match-id> <game> <score1> <score2>",
		Short: "Enter or correct one game",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]int, 3)
			for i, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("%q is not a number", arg)
				}
				nums[i] = n
			}

			result, err := putGame(args[0], nums[0], GameScore{Score1: nums[1], Score2: nums[2]})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newMatchSheetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheet <match-id> <scores>",
		Short: "Enter a whole score sheet, e.g. \"11-8 9-11 11-5 11-7\"",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := ParseScoreSheet(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			var result response.Match
			for i, g := range games {
				result, err = putGame(args[0], i+1, g)
				if err != nil {
					return fmt.Errorf("game %d: %w", i+1, err)
				}
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newMatchClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <match-id> <game>",
		Short: "Delete one game's score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match

			if err := client.Delete(fmt.Sprintf("/api/v1/matches/%s/games/%s", args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func putGame(matchID string, number int, g GameScore) (response.Match, error) {
	var result response.Match
	body := map[string]int{"score1": g.Score1, "score2": g.Score2}
	err := client.Put(fmt.Sprintf("/api/v1/matches/%s/games/%d", matchID, number), body, &result)
	return result, err
}

// GameScore is one game of a score sheet, player 1's points first
type GameScore struct {
	Score1 int
	Score2 int
}

// ParseScoreSheet reads games written as "11-8 9-11 12-10". Games may be
// separated by spaces or commas and scores joined by '-' or ':'.
func ParseScoreSheet(sheet string) ([]GameScore, error) {
	sp, err := splitter.NewSplitter(' ', splitter.DoubleQuotes)
	if err != nil {
		return nil, err
	}
	tokens, err := sp.Split(strings.ReplaceAll(strings.TrimSpace(sheet), ",", " "))
	if err != nil {
		return nil, err
	}

	var games []GameScore
	for _, tok := range tokens {
		tok = strings.Trim(strings.TrimSpace(tok), `"`)
		if tok == "" {
			continue
		}
		a, b, ok := strings.Cut(strings.ReplaceAll(tok, ":", "-"), "-")
		if !ok {
			return nil, fmt.Errorf("game %d: %q is not a score like 11-9", len(games)+1, tok)
		}
		s1, err1 := strconv.Atoi(strings.TrimSpace(a))
		s2, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("game %d: %q is not a score like 11-9", len(games)+1, tok)
		}
		games = append(games, GameScore{Score1: s1, Score2: s2})
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("score sheet is empty")
	}
	return games, nil
}
