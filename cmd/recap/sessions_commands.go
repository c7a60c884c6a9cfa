package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recap/internal/config"
	"recap/internal/report"
	"recap/internal/session"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List and manage analysis sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cfg *config.Config, store *session.Store) error {
				sessions, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					fmt.Fprintln(out, "No sessions recorded")
					return nil
				}
				fmt.Fprintln(out, report.RenderSessionsTable(sessions))

				health, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d total: %d completed, %d failed, %d review\n",
					health.Total, health.Completed, health.Failed, health.Review)
				return nil
			})
		},
	}

	cmd.AddCommand(newSessionsRemoveCommand(ctx))
	cmd.AddCommand(newSessionsClearCommand(ctx))
	return cmd
}

func newSessionsRemoveCommand(ctx *commandContext) *cobra.Command {
	var keepExport bool

	cmd := &cobra.Command{
		Use:     "rm <session-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a session and its export",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cfg *config.Config, store *session.Store) error {
				sess, err := resolveSession(cmd, store, args[0])
				if err != nil {
					return err
				}

				removed, err := store.Remove(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("session %s not found", sess.ID)
				}

				if !keepExport && sess.ExportPath != "" {
					if err := os.Remove(sess.ExportPath); err != nil && !os.IsNotExist(err) {
						return fmt.Errorf("remove export: %w", err)
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", sess.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&keepExport, "keep-export", false, "Leave the exported JSON on disk")
	return cmd
}

func newSessionsClearCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear completed sessions (or all with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(cfg *config.Config, store *session.Store) error {
				var (
					cleared int64
					err     error
				)
				if all {
					cleared, err = store.Clear(cmd.Context())
				} else {
					cleared, err = store.ClearCompleted(cmd.Context())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d sessions\n", cleared)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clear every session regardless of status")
	return cmd
}
