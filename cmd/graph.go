package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/graphexport"
	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Work with external graph databases",
}

var graphExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the skill graph (and optionally learners) to Neo4j",
	RunE: func(cmd *cobra.Command, args []string) error {
		withLearners, _ := cmd.Flags().GetBool("learners")
		prune, _ := cmd.Flags().GetBool("prune")
		batch, _ := cmd.Flags().GetInt("batch-size")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		nc := a.Config.Neo4j
		if uri, _ := cmd.Flags().GetString("uri"); uri != "" {
			nc.URI = uri
		}
		client, err := graphexport.NewNeo4jClient(cmd.Context(), graphexport.Options{
			URI:            nc.URI,
			Database:       nc.Database,
			Username:       nc.Username,
			Password:       nc.Password,
			MaxConnections: nc.MaxConnections,
		})
		if err != nil {
			return err
		}
		defer client.Close(cmd.Context())

		exp := graphexport.NewExporter(client,
			graphexport.WithBatchSize(batch),
			graphexport.WithPrune(prune),
			graphexport.WithLogger(a.Logger),
		)
		stats, err := exp.Export(cmd.Context(), a.Graph)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Body.Render(
			fmt.Sprintf("Exported %d skills and %d connections.", stats.Skills, stats.Connections)))

		if withLearners {
			ls, err := exp.ExportLearners(cmd.Context(), a.Ledger.Learners())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, theme.Body.Render(fmt.Sprintf("Exported %d learners.", ls.Learners)))
		}

		skills, conns, err := exp.Counts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("Database now holds %d skills and %d connections.", skills, conns)))
		return nil
	},
}

func init() {
	graphExportCmd.Flags().String("uri", "", "Bolt URI (overrides neo4j.uri)")
	graphExportCmd.Flags().Bool("learners", false, "Also export learners and their mastered skills")
	graphExportCmd.Flags().Bool("prune", false, "Delete skills that are no longer in the graph")
	graphExportCmd.Flags().Int("batch-size", graphexport.DefaultBatchSize, "Rows per UNWIND statement")

	graphCmd.AddCommand(graphExportCmd)
}
