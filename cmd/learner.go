package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/components"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var learnerCmd = &cobra.Command{
	Use:   "learner",
	Short: "Inspect learners and their progress",
}

var learnerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		learners := a.Ledger.Learners()
		rows := make([][]string, 0, len(learners))
		for _, l := range learners {
			rows = append(rows, []string{
				l.ID,
				l.Name,
				l.Role,
				l.Department,
				strconv.Itoa(l.CurrentXP),
				fmt.Sprintf("%d/%d", len(l.MasteredSkills), a.Graph.Len()),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(),
			components.Table([]string{"ID", "Name", "Role", "Department", "XP", "Mastered"}, rows))
		return nil
	},
}

var learnerShowCmd = &cobra.Command{
	Use:   "show <learner-id>",
	Short: "Show a learner's balance, category progress and next skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		l, ok := a.Ledger.Learner(args[0])
		if !ok {
			return &ledger.NotFoundError{Kind: "learner", ID: args[0]}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, components.KeyValues(l.Name, [][2]string{
			{"ID", l.ID},
			{"Role", l.Role},
			{"Department", l.Department},
			{"XP", strconv.Itoa(l.CurrentXP)},
			{"Mastered", strconv.Itoa(len(l.MasteredSkills))},
		}))

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Progress"))
		for _, c := range skillgraph.AllCategories() {
			skills := a.Graph.ByCategory(c)
			if len(skills) == 0 {
				continue
			}
			done := 0
			for _, s := range skills {
				if l.HasMastered(s.ID) {
					done++
				}
			}
			fmt.Fprintln(out, components.NewProgressBar(skillgraph.CategoryDisplayName(c), done, len(skills), 48).View())
		}

		next := a.Graph.AvailableNextSkills(l.MasteredSet())
		slices.Sort(next)
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Available next"))
		if len(next) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("Nothing left to unlock."))
			return nil
		}
		for _, id := range next {
			s, _ := a.Graph.Skill(id)
			style := theme.Locked
			if s.XPRequired <= l.CurrentXP {
				style = theme.Body
			}
			fmt.Fprintln(out, style.Render(fmt.Sprintf("  %-24s %5d XP", id, s.XPRequired)))
		}
		return nil
	},
}

func init() {
	learnerCmd.AddCommand(learnerListCmd)
	learnerCmd.AddCommand(learnerShowCmd)
}
