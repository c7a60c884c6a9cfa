package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"recap/internal/config"
	"recap/internal/report"
	"recap/internal/session"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the analyzed timeline for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cfg *config.Config, store *session.Store) error {
				sess, err := resolveSession(cmd, store, args[0])
				if err != nil {
					return err
				}
				if sess.ExportPath == "" {
					return fmt.Errorf("session %s has no exported timeline (status %s)", sess.ID, sess.Status)
				}

				export, err := report.ReadJSON(sess.ExportPath)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if jsonOutput {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(export)
				}

				fmt.Fprintf(out, "%s (%s)\n", sess.Title, sess.ID)
				fmt.Fprintln(out, report.RenderTimelineTable(export.Segments))
				fmt.Fprintf(out, "%d segments, %.0fs total, %.1fs average\n",
					export.Metadata.TotalSegments,
					export.Metadata.TotalDuration,
					export.Metadata.AvgSegmentDuration)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the timeline export as JSON")
	return cmd
}
