package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recap/internal/config"
	"recap/internal/report"
	"recap/internal/session"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Copy a session's timeline export to a new location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}
			target, err := config.ExpandPath(outputPath)
			if err != nil {
				return err
			}

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
				if err := report.WriteJSON(target, export); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Exported session %s to %s\n", sess.ID, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file for the JSON export")
	return cmd
}
