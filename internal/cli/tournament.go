package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament management commands",
	}

	cmd.AddCommand(newTournamentCreateCmd())
	cmd.AddCommand(newTournamentGetCmd())
	cmd.AddCommand(newTournamentListCmd())

	return cmd
}

func newTournamentCreateCmd() *cobra.Command {
	var name, format string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new tournament",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			if format != "" {
				req["format"] = format
			}

			var result response.Tournament

			if err := client.Post("/api/v1/tournaments", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name (required)")
	cmd.Flags().StringVar(&format, "format", "", "Knockout match format: bo3, bo5, bo7 (default: bo5)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTournamentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <tournament-id>",
		Short: "Get tournament details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Tournament

			if err := client.Get(fmt.Sprintf("/api/v1/tournaments/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newTournamentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tournaments",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Tournament

			if err := client.Get("/api/v1/tournaments", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
