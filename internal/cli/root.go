package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/udisondev/l2editor/internal/config"
	"github.com/udisondev/l2editor/internal/db"
	"github.com/udisondev/l2editor/internal/editor"
)

const DefaultConfigPath = "config/l2edit.yaml"

var errDatabaseDisabled = errors.New("revision database is disabled (database.enabled: false)")

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	cfg     config.Editor
}

// NewRootCommand builds the l2edit command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "l2edit",
		Short: "l2edit - Lineage 2 game data editor",
		Long: `l2edit edits the XML game data documents of an L2J server:
items, skills, fixed-schema skills and class skill trees.

Documents are edited in memory and written back on save. When the revision
database is enabled, every save is recorded and can be restored later.

Example:
  l2edit search items sword
  l2edit serve`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $L2EDIT_CONFIG or "+DefaultConfigPath+")")

	root.AddCommand(
		a.serveCmd(),
		a.validateCmd(),
		a.listCmd(),
		a.searchCmd(),
		a.showCmd(),
		a.deleteCmd(),
		a.formatCmd(),
		a.migrateCmd(),
		a.revisionsCmd(),
		a.restoreCmd(),
	)

	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	path := a.cfgFile
	if path == "" {
		path = DefaultConfigPath
		if p := os.Getenv("L2EDIT_CONFIG"); p != "" {
			path = p
		}
	}

	cfg, err := config.LoadEditor(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", path, "data_dir", cfg.DataDir)

	return nil
}

// openDB connects to the revision database.
func (a *app) openDB(ctx context.Context) (*db.DB, error) {
	if !a.cfg.Database.Enabled {
		return nil, errDatabaseDisabled
	}
	database, err := db.New(ctx, a.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Debug("database connected")
	return database, nil
}

// openSession loads every configured document. Saves are recorded as
// revisions when the database is enabled. The returned func releases the
// database connection.
func (a *app) openSession(ctx context.Context) (*editor.Session, func(), error) {
	closeFn := func() {}
	var recorder editor.RevisionRecorder

	if a.cfg.Database.Enabled {
		database, err := a.openDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrationsOnPool(ctx, database.Pool()); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		recorder = db.NewRevisionRepository(database.Pool())
		closeFn = database.Close
	}

	session := editor.NewSession(editor.PathsFromConfig(a.cfg), recorder)
	if err := session.Load(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return session, closeFn, nil
}

func parseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return int32(id), nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
