package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/components"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show skill graph and roster statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		g := a.Graph

		fmt.Fprintln(out, theme.Title.Render("Skill graph"))
		fmt.Fprintln(out, theme.Body.Render(fmt.Sprintf("%d skills, %d connections, %d clusters",
			g.Len(), len(g.Connections()), len(g.Clusters()))))
		for _, c := range skillgraph.AllCategories() {
			fmt.Fprintf(out, "  %s %d\n", theme.Label.Render(skillgraph.CategoryDisplayName(c)), len(g.ByCategory(c)))
		}
		if dropped := g.Dropped(); len(dropped) > 0 {
			fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%d entries dropped while building", len(dropped))))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Roster"))
		for _, l := range a.Ledger.Learners() {
			fmt.Fprintln(out, components.NewProgressBar(l.Name, len(l.MasteredSkills), g.Len(), 48).View())
		}
		return nil
	},
}
