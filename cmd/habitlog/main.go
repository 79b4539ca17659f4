package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/constants"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/postgres"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path, a PostgreSQL connection string without password, or 'postgres' to use the connection from HABITLOG_DB_CONNECTION or the OS keyring." default:"~/.config/habitlog/habitlog.db" env:"HABITLOG_CONFIG"`
	Owner    string `help:"Identity that owns the habits you manage." default:"${user}" env:"HABITLOG_OWNER"`
	Timezone string `help:"IANA timezone that decides which calendar day 'today' is." default:"Local" env:"HABITLOG_TIMEZONE"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITLOG_DEBUG"`
	Addr     string `help:"Listen address for the HTTP API." default:"${addr}" env:"HABITLOG_ADDR"`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitlog storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the JSON HTTP API."`
	Habit   cli.HabitCmd      `cmd:"" help:"Manage habits."`
	Report  cli.ReportCmd     `cmd:"" help:"Report today's outcome for a habit."`
	Backup  backups.BackupCmd `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection stored in the OS keyring."`
}

// loadEnv reads .env from the working directory when present.
func loadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func isPostgres(config string) bool {
	return config == "postgres" ||
		strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://")
}

// openStore picks the storage backend for config. SQLite stores come with a
// backup manager; PostgreSQL relies on server-side backups.
func openStore(config string) (storage.Provider, *backup.Manager, error) {
	if !isPostgres(config) {
		path := expandHome(config)
		return sqlite.NewStore(path), backup.NewManager(path), nil
	}

	connStr := config
	if config == "postgres" {
		resolved, source, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, nil, fmt.Errorf("no PostgreSQL connection configured (set %s or run 'habitlog keyring set'): %w", constants.EnvDBConnection, err)
		}
		logger.Debug("resolved connection string", "source", source)
		connStr = resolved
	} else if _, err := postgres.ValidateConnString(connStr); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, nil, fmt.Errorf("%w: use ~/.pgpass, %s or 'habitlog keyring set' instead", err, constants.EnvDBConnection)
		}
		return nil, nil, err
	}
	return postgres.New(connStr), nil, nil
}

func logDir(config string) string {
	if isPostgres(config) {
		return expandHome(filepath.Dir(constants.DefaultConfigPath))
	}
	return filepath.Dir(expandHome(config))
}

func main() {
	loadEnv()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track recurring habits and the streaks they earn"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"user":    currentUser(),
			"addr":    constants.DefaultAddr,
		},
	)

	command := strings.Fields(ctx.Command())[0]
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(CLI.Config),
		Echo:      command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		apperrors.Fatalf("invalid timezone %q: %v", CLI.Timezone, err)
	}

	var (
		store storage.Provider
		mgr   *backup.Manager
	)
	// Keyring management must work before any database is reachable.
	if command != "keyring" {
		store, mgr, err = openStore(CLI.Config)
		apperrors.Fatal(err)
	}

	opts := []tracker.Option{tracker.WithLocation(loc)}
	if mgr != nil {
		opts = append(opts, tracker.WithBackups(mgr))
	}

	appCtx := &cli.Context{
		Store:   store,
		Backups: mgr,
		Owner:   CLI.Owner,
		Addr:    CLI.Addr,
	}
	if store != nil {
		appCtx.Tracker = tracker.New(store, opts...)
	}

	// init and doctor load the store themselves.
	if store != nil && command != "init" && command != "doctor" {
		apperrors.Fatal(store.Load())
	}

	err = ctx.Run(appCtx)
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}
	apperrors.Fatal(err)
}
