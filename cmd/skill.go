package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/app"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/logging"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/components"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill graph",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills (optionally filtered by category or cluster)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		cluster, _ := cmd.Flags().GetString("cluster")

		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		var skills []skillgraph.Skill
		switch {
		case category != "" && cluster != "":
			return fmt.Errorf("use --category or --cluster, not both")
		case category != "":
			skills = g.ByCategory(skillgraph.Category(category))
			if len(skills) == 0 {
				return fmt.Errorf("no skills found for category %q", category)
			}
		case cluster != "":
			skills = g.ByCluster(cluster)
			if len(skills) == 0 {
				return fmt.Errorf("no skills found for cluster %q", cluster)
			}
		default:
			skills = g.All()
		}

		rows := make([][]string, 0, len(skills))
		for _, s := range skills {
			rows = append(rows, []string{
				s.ID,
				s.Name,
				theme.Category(s.Category),
				strconv.Itoa(s.Level),
				s.Tier.String(),
				strconv.Itoa(s.XPRequired),
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, components.Table([]string{"ID", "Name", "Category", "Level", "Tier", "XP"}, rows))
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%d skills", len(skills))))
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "Show a skill with its prerequisites and unlocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}
		s, err := g.GetSkill(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, components.KeyValues(s.Name, [][2]string{
			{"ID", s.ID},
			{"Category", theme.Category(s.Category)},
			{"Level", strconv.Itoa(s.Level)},
			{"Tier", s.Tier.String()},
			{"XP", strconv.Itoa(s.XPRequired)},
			{"Cluster", s.Cluster},
			{"Requires", joinIDs(g.Prerequisites(s.ID))},
			{"Unlocks", joinIDs(g.Unlocks(s.ID))},
		}))
		if s.Description != "" {
			fmt.Fprintln(out, theme.Hint.Render(s.Description))
		}
		return nil
	},
}

var skillPathCmd = &cobra.Command{
	Use:   "path <from> <to>",
	Short: "Show the shortest unlock path between two skills",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}
		path := g.ShortestPath(args[0], args[1])
		if len(path) == 0 {
			return fmt.Errorf("no path from %q to %q", args[0], args[1])
		}

		total := 0
		for _, id := range path[1:] {
			s, _ := g.Skill(id)
			total += s.XPRequired
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, strings.Join(path, theme.Hint.Render(" → ")))
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%d steps, %d XP after %s", len(path)-1, total, path[0])))
		return nil
	},
}

var skillValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a skill dataset for structural problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if len(args) == 1 {
			cfg.Graph.SkillsFile = args[0]
		}
		ds, err := app.LoadDataset(cfg.Graph)
		if err != nil {
			return err
		}
		if err := skillgraph.Validate(ds.Skills, ds.Connections); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.Mastered.Render(
			fmt.Sprintf("OK: %d skills, %d connections", len(ds.Skills), len(ds.Connections))))
		return nil
	},
}

func init() {
	skillListCmd.Flags().String("category", "", "Filter by category (combat, magic, support, special, advanced)")
	skillListCmd.Flags().String("cluster", "", "Filter by cluster (e.g. lulu)")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillPathCmd)
	skillCmd.AddCommand(skillValidateCmd)
}

// loadGraph builds the configured skill graph without opening the store.
func loadGraph(cmd *cobra.Command) (*skillgraph.Graph, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.BuildGraph(cfg.Graph, logging.New(os.Stderr, cfg.Log))
}

func joinIDs(skills []skillgraph.Skill) string {
	if len(skills) == 0 {
		return "—"
	}
	ids := make([]string, len(skills))
	for i, s := range skills {
		ids[i] = s.ID
	}
	return strings.Join(ids, ", ")
}

