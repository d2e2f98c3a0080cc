package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/config"
	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// weekFlags are the --semester/--week flags shared by week commands.
type weekFlags struct {
	semester string
	week     string
}

func (f *weekFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.semester, "semester", "s", "", "semester ID (default from config)")
	cmd.Flags().StringVarP(&f.week, "week", "w", "", "week ID")
}

// semesterID returns the flag value or the configured default.
func (f *weekFlags) semesterID(cfg *config.Config) (string, error) {
	sem := f.semester
	if sem == "" {
		sem = cfg.Source.Semester
	}
	if sem == "" {
		return "", errors.New(errors.ErrCodeInvalidWeek, "--semester is required (or set source.semester in the config)")
	}
	return sem, errors.ValidateIdentifier("semester", sem)
}

// selection returns the validated week selection.
func (f *weekFlags) selection(cfg *config.Config) (timetable.WeekSelection, error) {
	sem, err := f.semesterID(cfg)
	if err != nil {
		return timetable.WeekSelection{}, err
	}
	if f.week == "" {
		return timetable.WeekSelection{}, errors.New(errors.ErrCodeInvalidWeek, "--week is required")
	}
	sel := timetable.WeekSelection{SemesterID: sem, WeekID: f.week}
	return sel, sel.Validate()
}

// viewOpts holds the flags of the grid and agenda commands.
type viewOpts struct {
	weekFlags
	formats  string
	output   string
	grouping string
	refresh  bool
}

func (c *CLI) gridCommand() *cobra.Command {
	return c.viewCommand(pipeline.ViewGrid, "Lay out one week as a period-by-day grid")
}

func (c *CLI) agendaCommand() *cobra.Command {
	return c.viewCommand(pipeline.ViewAgenda, "List one week's classes grouped by day")
}

func (c *CLI) viewCommand(view, short string) *cobra.Command {
	var opts viewOpts
	formats := pipeline.FormatsFor(view)

	cmd := &cobra.Command{
		Use:   view,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), view, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "",
		fmt.Sprintf("output format(s): %s (default %s, comma-separated)", strings.Join(formats, ", "), formats[0]))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached data and artifacts")
	if view == pipeline.ViewGrid {
		cmd.Flags().StringVar(&opts.grouping, "grouping", "", "collision grouping: exact, interval (default from config)")
	}
	return cmd
}

func (c *CLI) runView(ctx context.Context, view string, opts *viewOpts) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	sel, err := opts.selection(cfg)
	if err != nil {
		return err
	}

	popts := layoutDefaults(cfg)
	popts.SemesterID = sel.SemesterID
	popts.WeekID = sel.WeekID
	popts.View = view
	popts.Formats = parseFormats(opts.formats)
	popts.Refresh = opts.refresh
	if opts.grouping != "" {
		popts.Grouping = opts.grouping
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if len(popts.Formats) > 1 && opts.output == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "multiple formats require --output")
	}

	e, err := c.openEnv(ctx, opts.refresh)
	if err != nil {
		return err
	}
	defer e.Close(ctx)

	prog := newProgress(loggerFromContext(ctx))
	if opts.output == "" {
		result, err := e.runner(c.Logger).Execute(ctx, popts)
		if err != nil {
			return err
		}
		return c.writeStdout(result.Artifacts[popts.Formats[0]])
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s for %s...", view, sel))
	spin.Start()
	result, err := e.runner(c.Logger).Execute(ctx, popts)
	spin.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, popts.Formats)
	for _, f := range popts.Formats {
		if err := writeArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}
	prog.done("rendered week", "week", sel, "view", view)

	printSuccess("Rendered %s %s", view, sel)
	for _, f := range popts.Formats {
		printFile(paths[f])
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	if result.Stats.Dropped > 0 {
		printWarning("%d sessions fall outside the timetable and were not placed", result.Stats.Dropped)
	}
	printNextStep("Browse interactively", fmt.Sprintf("%s browse -s %s -w %s", appName, sel.SemesterID, sel.WeekID))
	return nil
}

func (c *CLI) writeStdout(data []byte) error {
	if _, err := c.stdout.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := fmt.Fprintln(c.stdout)
		return err
	}
	return nil
}

// formatExt maps formats to file extensions.
var formatExt = map[string]string{
	render.FormatJSON: ".json",
	render.FormatSVG:  ".svg",
	render.FormatText: ".txt",
	render.FormatCSV:  ".csv",
}

// outputPaths returns the file for each format. A single format writes to
// output as given; several formats share output's base name.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	for _, f := range formats {
		paths[f] = base + formatExt[f]
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
