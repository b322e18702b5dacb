package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/udisondev/l2editor/internal/db"
	"github.com/udisondev/l2editor/internal/editor"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply revision database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.RunMigrations(cmd.Context(), a.cfg.Database.DSN()); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database migrations applied")
			return nil
		},
	}
}

func (a *app) revisionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "revisions <kind>",
		Short: "List saved revisions of a document, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := editor.ParseKind(args[0])
			if err != nil {
				return err
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			revs, err := db.NewRevisionRepository(database.Pool()).ListRevisions(cmd.Context(), string(k), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(revs) == 0 {
				fmt.Fprintf(out, "No revisions of %s found.\n", k)
				return nil
			}
			fmt.Fprintf(out, "%-8s %-20s %s\n", "ID", "SAVED", "DEFINITIONS")
			for _, rev := range revs {
				fmt.Fprintf(out, "%-8d %-20s %d\n", rev.ID, rev.CreatedAt.Local().Format(time.DateTime), rev.Definitions)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of revisions to list")
	return cmd
}

func (a *app) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <revision-id>",
		Short: "Replace a document with a saved revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			revID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid revision id %q: %w", args[0], err)
			}

			database, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			session, closeSession, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeSession()

			rev, err := db.NewRevisionRepository(database.Pool()).GetRevision(ctx, revID)
			if err != nil {
				return err
			}
			if rev == nil {
				return fmt.Errorf("revision %d not found", revID)
			}

			k, err := editor.ParseKind(rev.Kind)
			if err != nil {
				return err
			}
			if err := session.Restore(ctx, k, rev.Content); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "restored %s from revision %d (%d definitions)\n", k, rev.ID, rev.Definitions)
			return nil
		},
	}
}
