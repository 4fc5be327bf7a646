package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/store"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/components"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the ledger and LLM event logs",
}

var ledgerEventsCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List recent learn and reset events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		learner, _ := cmd.Flags().GetString("learner")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLedgerEvents(cmd.Context(), learner, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No ledger events found."))
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			rows = append(rows, []string{
				strconv.FormatInt(e.Sequence, 10),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Type,
				e.LearnerID,
				e.SkillID,
				strconv.Itoa(e.Cost),
				strconv.Itoa(e.BalanceAfter),
			})
		}
		fmt.Fprintln(out, components.Table([]string{"Seq", "Timestamp", "Type", "Learner", "Skill", "Cost", "Balance"}, rows))
		return nil
	},
}

var llmEventsCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		events = slices.DeleteFunc(events, func(e store.LLMEvent) bool {
			return purpose != "" && e.Purpose != purpose
		})

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM events found."))
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			ok := theme.Mastered.Render("✓")
			if !e.Success {
				ok = theme.Failure.Render("✗")
			}
			rows = append(rows, []string{
				truncate(e.ID, 8),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				ok,
			})
		}
		fmt.Fprintln(out, components.Table([]string{"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK"}, rows))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id-prefix>",
	Short: "View the full request and response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		i := slices.IndexFunc(events, func(e store.LLMEvent) bool {
			return strings.HasPrefix(e.ID, args[0])
		})
		if i < 0 {
			return fmt.Errorf("event %s not found", args[0])
		}
		e := events[i]

		pairs := [][2]string{
			{"ID", e.ID},
			{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if e.ErrorMessage != "" {
			pairs = append(pairs, [2]string{"Error", e.ErrorMessage})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, components.KeyValues("LLM event", pairs))
		for _, section := range []struct{ title, body string }{
			{"Request", e.RequestBody},
			{"Response", e.ResponseBody},
		} {
			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.Title.Render(section.title))
			if section.body == "" {
				fmt.Fprintln(out, theme.Hint.Render("(not captured)"))
				continue
			}
			fmt.Fprintln(out, section.body)
		}
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show aggregated LLM token usage by purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM usage recorded yet."))
			return nil
		}

		type usage struct {
			calls, failures, in, out int
			latency                  int64
		}
		byPurpose := make(map[string]*usage)
		for _, e := range events {
			u, ok := byPurpose[e.Purpose]
			if !ok {
				u = &usage{}
				byPurpose[e.Purpose] = u
			}
			u.calls++
			if !e.Success {
				u.failures++
			}
			u.in += e.InputTokens
			u.out += e.OutputTokens
			u.latency += e.LatencyMs
		}

		purposes := make([]string, 0, len(byPurpose))
		for p := range byPurpose {
			purposes = append(purposes, p)
		}
		slices.Sort(purposes)

		rows := make([][]string, 0, len(purposes))
		for _, p := range purposes {
			u := byPurpose[p]
			rows = append(rows, []string{
				p,
				strconv.Itoa(u.calls),
				strconv.Itoa(u.failures),
				strconv.Itoa(u.in),
				strconv.Itoa(u.out),
				strconv.FormatInt(u.latency/int64(u.calls), 10),
			})
		}
		fmt.Fprintln(out, components.Table([]string{"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms"}, rows))
		return nil
	},
}

// openStore opens only the database, for commands that read event logs.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path := cfg.DB
	if path == "" {
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	ledgerEventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	ledgerEventsCmd.Flags().StringP("learner", "l", "", "Only show events for this learner")

	llmEventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmEventsCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. recommend-reasons)")

	llmEventsCmd.AddCommand(llmViewCmd)
	llmEventsCmd.AddCommand(llmUsageCmd)

	eventsCmd.AddCommand(ledgerEventsCmd)
	eventsCmd.AddCommand(llmEventsCmd)
}
