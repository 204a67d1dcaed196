package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Harmonic/harmonic/config"
	"github.com/Harmonic/harmonic/internal/database"
	"github.com/Harmonic/harmonic/internal/repository"
	"github.com/Harmonic/harmonic/internal/seed"
	"github.com/Harmonic/harmonic/pkg/logger"
)

type seedOptions struct {
	file       string
	dryRun     bool
	initSchema bool
	timeout    time.Duration
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load harmonic states and assessment questions",
		Long: `Upsert harmonic states and assessment questions into the database.

Without --file the built-in questionnaire is used. Question ids are part of
the seed file, so running the command again updates rows in place.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), out, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "seed YAML file (defaults to the built-in questionnaire)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the seed file without touching the database")
	cmd.Flags().BoolVar(&opts.initSchema, "init-schema", false, "create missing tables before seeding")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "overall timeout")
	return cmd
}

func runSeed(ctx context.Context, out io.Writer, opts *seedOptions) error {
	data, err := seed.Load(opts.file)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintf(out, "seed file is valid: %d harmonic states, %d questions\n", len(data.HarmonicStates), len(data.Questions))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.NewLoggerWithLevel(cfg.LogLevel)

	db, err := database.Open("postgres", cfg.Database.DSN(), cfg.Environment)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.initSchema {
		if err := database.InitializeDatabase(db); err != nil {
			return fmt.Errorf("failed to initialize database schema: %w", err)
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	seeder := seed.NewSeeder(
		repository.NewHarmonicStateRepository(db),
		repository.NewQuestionRepository(db),
		log,
	)
	result, err := seeder.Apply(ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "seeded %d harmonic states and %d questions\n", result.HarmonicStates, result.Questions)
	return nil
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
