// Command jobtrail-admin provides operational helpers for the jobtrail
// database: migrations, development seeding, and resets.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/jobtrail/jobtrail/config"
	"github.com/jobtrail/jobtrail/internal/bootstrap"
	"github.com/jobtrail/jobtrail/internal/data"
	"github.com/jobtrail/jobtrail/internal/devseed"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"db-reset": {
			name:        "db-reset",
			description: "Delete all job data, run migrations, and re-seed development data",
			run:         runDBReset,
		},
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: jobtrail-admin <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, cmds[name].description)
	}
}

// connect opens the configured database for a command invocation.
func connect(cmdCtx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cmdCtx.Config.Postgres,
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
}

func withDB(cmdCtx *commandContext, fn func(ctx context.Context, db *sql.DB) error) error {
	db, err := connect(cmdCtx)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Error("close database failed", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()
	return fn(ctx, db)
}

func runMigrate(cmdCtx *commandContext, _ []string) error {
	return withDB(cmdCtx, func(ctx context.Context, db *sql.DB) error {
		if err := data.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		cmdCtx.Logger.InfoContext(ctx, "migrations applied")
		return nil
	})
}

func runDBSeed(cmdCtx *commandContext, _ []string) error {
	return withDB(cmdCtx, func(ctx context.Context, db *sql.DB) error {
		if err := data.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return devseed.Run(ctx, devseed.NewServices(db), cmdCtx.Logger)
	})
}

func runDBReset(cmdCtx *commandContext, _ []string) error {
	if !cmdCtx.Config.IsDev {
		return fmt.Errorf("db-reset refuses to run outside development mode (set DEV=true)")
	}
	return withDB(cmdCtx, func(ctx context.Context, db *sql.DB) error {
		if err := data.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		if _, err := db.ExecContext(ctx, "DELETE FROM jobs"); err != nil {
			return fmt.Errorf("clear jobs: %w", err)
		}
		cmdCtx.Logger.InfoContext(ctx, "job data cleared")
		return devseed.Run(ctx, devseed.NewServices(db), cmdCtx.Logger)
	})
}
