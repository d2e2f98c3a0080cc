package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/source"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// seedCommand copies weeks and the period table from a file source
// directory into MongoDB.
func (c *CLI) seedCommand() *cobra.Command {
	var (
		from  string
		flags weekFlags
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load file-source weeks into MongoDB",
		Long: `Seed reads weeks from a file-source directory and replaces the matching
weeks in the MongoDB database named by source.mongo_uri and
source.mongo_database. Without --week every week of the semester is copied.
The period table is copied as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--from is required")
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.Source.MongoURI == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "source.mongo_uri is required to seed")
			}
			sem, err := flags.semesterID(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			files, err := source.NewFileSource(from)
			if err != nil {
				return err
			}
			mongo, err := source.NewMongoSource(ctx, cfg.Source.MongoURI, cfg.Source.MongoDatabase)
			if err != nil {
				return err
			}
			defer mongo.Close(context.WithoutCancel(ctx))

			return c.runSeed(ctx, files, mongo, sem, flags.week)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "file-source directory to read")
	flags.register(cmd)
	return cmd
}

// seedTarget is the write side of a seed run.
type seedTarget interface {
	ReplaceWeek(ctx context.Context, sel timetable.WeekSelection, sessions []timetable.ClassSession) (int, error)
	ReplacePeriods(ctx context.Context, table *timetable.PeriodTable) error
}

func (c *CLI) runSeed(ctx context.Context, from source.Source, to seedTarget, semester, week string) error {
	weeks := []string{week}
	if week == "" {
		var err error
		if weeks, err = from.Weeks(ctx, semester); err != nil {
			return err
		}
		if len(weeks) == 0 {
			return errors.New(errors.ErrCodeWeekNotFound, "no weeks found for %s in %s", semester, from.Name())
		}
	}

	periods, err := from.Periods(ctx)
	if err != nil {
		return err
	}
	if err := to.ReplacePeriods(ctx, periods); err != nil {
		return fmt.Errorf("seed periods: %w", err)
	}
	printSuccess("Seeded period table (%d periods)", periods.Len())

	prog := newProgress(c.Logger)
	total := 0
	for _, w := range weeks {
		sel := timetable.WeekSelection{SemesterID: semester, WeekID: w}
		spin := newSpinnerWithContext(ctx, fmt.Sprintf("Seeding %s...", sel))
		spin.Start()

		sessions, err := from.Sessions(ctx, sel)
		if err != nil {
			spin.StopWithError(fmt.Sprintf("%s: %s", sel, errors.UserMessage(err)))
			return err
		}
		n, err := to.ReplaceWeek(ctx, sel, sessions)
		if err != nil {
			spin.StopWithError(fmt.Sprintf("%s: %v", sel, err))
			return fmt.Errorf("seed %s: %w", sel, err)
		}
		spin.StopWithSuccess(fmt.Sprintf("Seeded %s (%d sessions)", sel, n))
		total += n
	}
	prog.done("seed complete", "semester", semester, "weeks", len(weeks), "sessions", total)
	return nil
}
