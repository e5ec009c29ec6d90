package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/roster"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player registration commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerImportCmd())
	cmd.AddCommand(newPlayerFindCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var name, club string
	var seed int

	cmd := &cobra.Command{
		Use:   "add <tournament-id>",
		Short: "Register a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name}
			if club != "" {
				req["club"] = club
			}
			if seed > 0 {
				req["seed"] = seed
			}

			var result response.Player

			if err := client.Post(fmt.Sprintf("/api/v1/tournaments/%s/players", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&club, "club", "", "Club or association")
	cmd.Flags().IntVar(&seed, "seed", 0, "Seed rank, 1 is best (default: unseeded)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <tournament-id>",
		Short: "List registered players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPlayers(cmd, args[0], "")
		},
	}
}

func newPlayerFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <tournament-id> <query>",
		Short: "Find players by approximate name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPlayers(cmd, args[0], args[1])
		},
	}
}

func printPlayers(cmd *cobra.Command, tournamentID, query string) error {
	path := fmt.Sprintf("/api/v1/tournaments/%s/players", tournamentID)
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}

	var result []response.Player

	if err := client.Get(path, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}

func newPlayerImportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <tournament-id> <file>",
		Short: "Import an entry list (text, yaml or html)",
		Long: `Import an entry list in one request. The whole list is rejected if
any entry is invalid.

Text files hold one entry per line: a name, an optional club and an
optional trailing seed. Quote names with spaces:

  "Ma Long" Shandong 1
  "Timo Boll" "Borussia Dusseldorf"

YAML files hold a list of {name, club, seed}. HTML files are read from
the first table with name, club and seed columns.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if format == "" {
				format = string(roster.FormatFromFilename(args[1]))
			}

			req := map[string]string{"format": format, "content": string(content)}
			var result []response.Player

			if err := client.Post(fmt.Sprintf("/api/v1/tournaments/%s/players/import", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "File format: text, yaml, html (default: from file extension)")

	return cmd
}
