package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// weeksCommand lists the weeks a source has for a semester.
func (c *CLI) weeksCommand() *cobra.Command {
	var flags weekFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "List the weeks of a semester",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			sem, err := flags.semesterID(cfg)
			if err != nil {
				return err
			}
			e, err := c.openEnv(ctx, false)
			if err != nil {
				return err
			}
			defer e.Close(ctx)

			weeks, err := e.source.Weeks(ctx, sem)
			if err != nil {
				return err
			}
			if asJSON {
				if weeks == nil {
					weeks = []string{}
				}
				return json.NewEncoder(c.stdout).Encode(weeks)
			}
			if len(weeks) == 0 {
				printInfo("No weeks in %s", sem)
				return nil
			}
			for _, w := range weeks {
				fmt.Fprintln(c.stdout, w)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.semester, "semester", "s", "", "semester ID (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as a JSON array")
	return cmd
}

// periodsCommand prints the period table.
func (c *CLI) periodsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Print the period table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.openEnv(ctx, false)
			if err != nil {
				return err
			}
			defer e.Close(ctx)

			periods, err := e.source.Periods(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(periods)
			}

			rows := make([][]string, 0, periods.Len())
			for _, p := range periods.Periods() {
				rows = append(rows, []string{strconv.Itoa(p.Period), p.Start, p.End})
			}
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Period", "Start", "End").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					if col == 0 {
						return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})
			fmt.Fprintln(c.stdout, t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
