package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/components"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <learner-id>",
	Short: "Recommend the next skills to learn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, _ := cmd.Flags().GetString("goal")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.Ledger.Learner(args[0]); !ok {
			return &ledger.NotFoundError{Kind: "learner", ID: args[0]}
		}
		if goal != "" && !a.Graph.Has(goal) {
			fmt.Fprintln(cmd.ErrOrStderr(), theme.Hint.Render(fmt.Sprintf("Unknown goal %q, ignoring.", goal)))
		}

		recs := a.Recommend.Recommendations(cmd.Context(), args[0], goal)
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No skills available to learn."))
			return nil
		}

		rows := make([][]string, 0, len(recs))
		for i, r := range recs {
			marker := ""
			if r.OnGoalPath {
				marker = theme.GoalMarker.Render("★")
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				marker + r.Skill.ID,
				theme.Priority(string(r.Priority)),
				strconv.Itoa(r.Cost),
				r.Reason,
			})
		}
		fmt.Fprintln(out, components.Table([]string{"#", "Skill", "Priority", "XP", "Why"}, rows))
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("goal", "", "Skill ID to steer recommendations toward")
}
