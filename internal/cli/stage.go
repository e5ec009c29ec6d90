package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/request"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
)

func newStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Group stage and knockout stage commands",
	}

	cmd.AddCommand(newStageListCmd())
	cmd.AddCommand(newStageGroupsCmd())
	cmd.AddCommand(newStageGetCmd("standings", "Show group tables", response.StageStandings{}))
	cmd.AddCommand(newStageGetCmd("matches", "List the stage's matches", []response.Match{}))
	cmd.AddCommand(newStagePostCmd("close", "Close a finished group stage", response.Stage{}))
	cmd.AddCommand(newStagePostCmd("knockout", "Draw a knockout from a closed group stage", response.Knockout{}))

	return cmd
}

func newStageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <tournament-id>",
		Short: "List a tournament's stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Stage

			if err := client.Get(fmt.Sprintf("/api/v1/tournaments/%s/stages", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

// stageConfigFile is the YAML layout accepted by "stage groups --config"
type stageConfigFile struct {
	Groups    int    `yaml:"groups"`
	Advance   int    `yaml:"advance"`
	Format    string `yaml:"format"`
	BestThird int    `yaml:"best_third"`
}

func loadStageConfig(path string) (stageConfigFile, error) {
	var sc stageConfigFile
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sc, nil
}

func (sc stageConfigFile) request() request.CreateGroupStageRequest {
	return request.CreateGroupStageRequest{
		NumberOfGroups: sc.Groups,
		AdvanceCount:   sc.Advance,
		MatchFormat:    sc.Format,
		AllowBestThird: sc.BestThird > 0,
		BestThirdCount: sc.BestThird,
	}
}

func newStageGroupsCmd() *cobra.Command {
	var configPath string
	var flags stageConfigFile

	cmd := &cobra.Command{
		Use:   "groups <tournament-id>",
		Short: "Draw players into round-robin groups",
		Long: `Draw every registered player into round-robin groups and schedule
their matches. Running it again before results are in replaces the draw.

Options come from flags or a YAML file:

  groups: 4
  advance: 2
  format: bo5
  best_third: 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := flags
			if configPath != "" {
				loaded, err := loadStageConfig(configPath)
				if err != nil {
					return err
				}
				sc = loaded
			}

			var result response.GroupStage

			if err := client.Post(fmt.Sprintf("/api/v1/tournaments/%s/stages/groups", args[0]), sc.request(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML stage options file")
	cmd.Flags().IntVar(&flags.Groups, "groups", 0, "Number of groups (default: 4)")
	cmd.Flags().IntVar(&flags.Advance, "advance", 0, "Players advancing per group (default: 2)")
	cmd.Flags().StringVar(&flags.Format, "format", "", "Match format: bo3, bo5, bo7")
	cmd.Flags().IntVar(&flags.BestThird, "best-third", 0, "Best third-placed players that also advance")

	return cmd
}

func newStageGetCmd[T any](name, short string, _ T) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <stage-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result T

			if err := client.Get(fmt.Sprintf("/api/v1/stages/%s/%s", args[0], name), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newStagePostCmd[T any](name, short string, _ T) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <stage-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result T

			if err := client.Post(fmt.Sprintf("/api/v1/stages/%s/%s", args[0], name), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
