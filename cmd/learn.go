package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ledger"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var learnCmd = &cobra.Command{
	Use:   "learn <learner-id> <skill-id>",
	Short: "Spend XP to master a skill",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		learnerID, skillID := args[0], args[1]
		l, err := a.Ledger.LearnSkill(cmd.Context(), learnerID, skillID)

		var funds *ledger.InsufficientFundsError
		switch {
		case err == nil:
		case errors.As(err, &funds):
			fmt.Fprintln(cmd.ErrOrStderr(), theme.Failure.Render(
				fmt.Sprintf("Not enough XP: %s costs %d, %s has %d (short %d).",
					funds.SkillID, funds.Required, funds.LearnerID, funds.Available, funds.Shortfall())))
			return err
		default:
			return err
		}

		s, _ := a.Graph.Skill(skillID)
		fmt.Fprintln(cmd.OutOrStdout(), theme.Mastered.Render(
			fmt.Sprintf("%s learned %s for %d XP.", l.Name, s.Name, s.XPRequired)))
		fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render(fmt.Sprintf("%d XP remaining", l.CurrentXP)))
		return nil
	},
}
