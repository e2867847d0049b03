package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/2beens/vibefit/internal/appdata"
)

var (
	fakeCount int
	fakeSeed  int64
	seedForce bool
	dataFile  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with demo data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pool, _, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		store := appdata.NewStore(pool)
		now := time.Now()

		if fakeCount <= 0 && !seedForce {
			seeded, err := store.SeedIfEmpty(ctx, now)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "database not empty, nothing seeded (use --force to replace)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo data seeded")
			return nil
		}

		doc := appdata.Demo(now)
		if fakeCount > 0 {
			doc.Workouts = appdata.FakeHistory(fakeSeed, fakeCount, now)
		}
		if err := store.Import(ctx, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %s workouts\n", humanize.Comma(int64(len(doc.Workouts))))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all data as one JSON document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pool, _, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		doc, err := appdata.NewStore(pool).Export(ctx)
		if err != nil {
			return err
		}
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal export: %w", err)
		}

		if dataFile == "" {
			_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
			return err
		}
		if err := os.WriteFile(dataFile, raw, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", dataFile, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d workouts to %s (%s)\n",
			len(doc.Workouts), dataFile, humanize.Bytes(uint64(len(raw))))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace all data with a JSON document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		doc, err := readDocument(dataFile)
		if err != nil {
			return err
		}

		pool, _, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := appdata.NewStore(pool).Import(ctx, *doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d workouts, %d custom exercises, %d goals\n",
			len(doc.Workouts), len(doc.CustomExercises), len(doc.PersonalGoals))
		return nil
	},
}

func readDocument(path string) (*appdata.AppData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc appdata.AppData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", appdata.ErrInvalidDocument, err)
	}
	doc.Patch()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
