// Command vibefitctl is the admin tool for a vibefit deployment: password
// hashes for the admin login, demo seeding, and JSON export/import.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/2beens/vibefit/internal/config"
	"github.com/2beens/vibefit/internal/db"
)

var (
	env        string
	configPath string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "vibefitctl",
	Short:         "Admin tool for the vibefit backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "operation timeout")

	seedCmd.Flags().IntVar(&fakeCount, "fake", 0, "seed this many generated workouts instead of the demo document")
	seedCmd.Flags().Int64Var(&fakeSeed, "fake-seed", 1, "seed for generated workouts")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "replace existing data")
	exportCmd.Flags().StringVarP(&dataFile, "out", "o", "", "output file (default: stdout)")
	importCmd.Flags().StringVarP(&dataFile, "in", "i", "", "input file")
	_ = importCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openDB connects to the configured database and makes sure the tables exist.
func openDB(ctx context.Context) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, err
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pool, cfg, nil
}
