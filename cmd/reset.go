package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var resetCmd = &cobra.Command{
	Use:   "reset [learner-id]",
	Short: "Reset learner data to the starting roster",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		switch {
		case all && len(args) > 0:
			return fmt.Errorf("use a learner ID or --all, not both")
		case !all && len(args) == 0:
			return fmt.Errorf("specify a learner ID or --all")
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if all {
			learners := a.Ledger.ResetAll(cmd.Context())
			fmt.Fprintln(out, theme.Body.Render(fmt.Sprintf("Reset %d learners.", len(learners))))
			return nil
		}

		l, err := a.Ledger.Reset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, theme.Body.Render(
			fmt.Sprintf("Reset %s: %d XP, %d skills mastered.", l.Name, l.CurrentXP, len(l.MasteredSkills))))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset every learner")
}
