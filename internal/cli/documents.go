package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udisondev/l2editor/internal/data"
	"github.com/udisondev/l2editor/internal/editor"
)

var kindNames = func() []string {
	names := make([]string, len(editor.Kinds))
	for i, k := range editor.Kinds {
		names[i] = string(k)
	}
	return names
}()

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse every configured document and report definition counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := editor.NewSession(editor.PathsFromConfig(a.cfg), nil)
			if err := session.Load(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return session.Edit(func(r *editor.Repos) error {
				for _, k := range editor.Kinds {
					path := session.Path(k)
					if path == "" {
						fmt.Fprintf(out, "%-12s %6s  (not configured)\n", k, "-")
						continue
					}
					defs, err := r.Search(k, "")
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-12s %6d  %s\n", k, len(defs), path)
				}
				return nil
			})
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <kind>",
		Short:     "List every definition of a kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printSearch(cmd, args[0], "")
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <kind> <term>",
		Short: "Find definitions whose id, name or type contains term",
		Long: `Find definitions whose decimal id, name or (for items and skill trees)
type contains term, ignoring case.

Examples:
  l2edit search items sword
  l2edit search skills 12`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printSearch(cmd, args[0], args[1])
		},
	}
}

func (a *app) printSearch(cmd *cobra.Command, kindName, term string) error {
	k, err := editor.ParseKind(kindName)
	if err != nil {
		return err
	}
	session := editor.NewSession(editor.PathsFromConfig(a.cfg), nil)
	if err := session.Load(cmd.Context()); err != nil {
		return err
	}

	var defs []data.Definition
	if err := session.Edit(func(r *editor.Repos) error {
		defs, err = r.Search(k, term)
		return err
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range defs {
		fmt.Fprintln(out, d)
	}
	return nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Print one definition as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := editor.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			session := editor.NewSession(editor.PathsFromConfig(a.cfg), nil)
			if err := session.Load(cmd.Context()); err != nil {
				return err
			}

			var (
				def   data.Definition
				found bool
			)
			if err := session.Edit(func(r *editor.Repos) error {
				def, found, err = r.Find(k, id)
				return err
			}); err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s %d not found", k, id)
			}

			raw, err := json.MarshalIndent(def, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding %s %d: %w", k, id, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Remove the first definition with id and save the document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := editor.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			session, closeSession, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSession()

			var removed bool
			if err := session.Edit(func(r *editor.Repos) error {
				removed, err = r.Delete(k, id)
				return err
			}); err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s %d not found", k, id)
			}

			if err := session.Save(cmd.Context(), k); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %d\n", k, id)
			return nil
		},
	}
}

func (a *app) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format [kind...]",
		Short: "Rewrite documents in canonical layout",
		Long: `Load and save documents without changes, rewriting them in the editor's
canonical layout. Without arguments every configured document is formatted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kinds []editor.Kind
			for _, arg := range args {
				k, err := editor.ParseKind(arg)
				if err != nil {
					return err
				}
				kinds = append(kinds, k)
			}

			session, closeSession, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSession()

			if len(kinds) == 0 {
				for _, k := range editor.Kinds {
					if session.Path(k) != "" {
						kinds = append(kinds, k)
					}
				}
			}

			for _, k := range kinds {
				if err := session.Save(cmd.Context(), k); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", session.Path(k))
			}
			return nil
		},
	}
}
