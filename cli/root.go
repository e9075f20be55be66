// Package cli wires the rosterd commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/engine/infra/postgres"
	"github.com/rosterd/rosterd/engine/infra/server"
	"github.com/rosterd/rosterd/pkg/config"
	"github.com/rosterd/rosterd/pkg/logger"
	"github.com/spf13/cobra"
)

// RootCmd builds the root command with all subcommands attached.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rosterd",
		Short: "Accounts and groups membership service",
		Long:  "rosterd serves the accounts/groups membership HTTP API backed by PostgreSQL with a Redis read cache.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(cmd)
		},
	}
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	cmd.PersistentFlags().String("env-file", "", "path to a .env file to load before reading configuration")
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(migrateCmd())
	return cmd
}

func loadEnvFile(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		// A local .env is optional.
		if _, statErr := os.Stat(".env"); statErr == nil {
			envFile = ".env"
		} else {
			return nil
		}
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", envFile, err)
	}
	return nil
}

// setup loads configuration and installs the process logger, returning a
// context carrying it.
func setup(cmd *cobra.Command) (context.Context, *config.Config, error) {
	logLevel, logJSON, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger.SetupLogger(logLevel, logJSON)
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	ctx := logger.ContextWithLogger(cmd.Context(), logger.GetDefault())
	return ctx, cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			log := logger.FromContext(ctx)

			storeCfg := storeConfig(cfg)
			if cfg.Database.AutoMigrate {
				log.Info("Applying database migrations")
				if err := postgres.ApplyMigrationsWithLock(ctx, postgres.DSN(storeCfg)); err != nil {
					return fmt.Errorf("applying migrations: %w", err)
				}
			}
			store, err := postgres.NewStore(ctx, storeCfg)
			if err != nil {
				return fmt.Errorf("connecting to postgres: %w", err)
			}
			defer store.Close(ctx)

			redisCache, err := cache.NewRedis(ctx, cacheConfig(cfg))
			if err != nil {
				return fmt.Errorf("connecting to redis: %w", err)
			}
			defer redisCache.Close()

			return server.NewServer(cfg, store, redisCache).Run(ctx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := postgres.ApplyMigrationsWithLock(ctx, postgres.DSN(storeConfig(cfg))); err != nil {
				return fmt.Errorf("applying migrations: %w", err)
			}
			logger.FromContext(ctx).Info("Migrations applied")
			return nil
		},
	}
}

func storeConfig(cfg *config.Config) *postgres.Config {
	return &postgres.Config{
		ConnString:      cfg.Database.ConnString,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
}

func cacheConfig(cfg *config.Config) *cache.Config {
	return &cache.Config{
		URL:      cfg.Redis.URL,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Enabled:  cfg.Cache.Enabled,
		TTL:      cfg.Cache.TTL,
	}
}
