package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
)

func newKnockoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knockout",
		Short: "Knockout commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate <tournament-id>",
		Short: "Draw every registered player into a knockout bracket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Knockout

			if err := client.Post(fmt.Sprintf("/api/v1/tournaments/%s/stages/knockout", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	})

	return cmd
}
