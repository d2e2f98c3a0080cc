package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/render"
	"github.com/matzehuels/weekgrid/pkg/timetable"
	"github.com/matzehuels/weekgrid/pkg/weekstore"
)

var (
	browseWeekStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	browseActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens the interactive week browser.
func (c *CLI) browseCommand() *cobra.Command {
	var flags weekFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a semester week by week",
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
			if len(weeks) == 0 {
				return errors.New(errors.ErrCodeWeekNotFound, "semester %s has no weeks", sem)
			}
			start := 0
			if flags.week != "" {
				if start = slices.Index(weeks, flags.week); start < 0 {
					return errors.New(errors.ErrCodeWeekNotFound, "week %q not found in %s", flags.week, sem)
				}
			}

			defaults := layoutDefaults(cfg)
			store := weekstore.New(e.source, e.source, weekstore.WithLogger(c.Logger))
			m := newBrowseModel(ctx, store, sem, weeks, start, defaults.LayoutOptions())

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
			unsubscribe := store.Subscribe(func(s weekstore.Snapshot) { p.Send(snapshotMsg(s)) })
			defer unsubscribe()

			if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// =============================================================================
// browseModel
// =============================================================================

// snapshotMsg carries a published store snapshot into the program.
type snapshotMsg weekstore.Snapshot

// selectDoneMsg reports the end of a Select call.
type selectDoneMsg struct{ err error }

// browseModel shows one week at a time. The store owns fetching; the model
// only renders the latest snapshot it was sent.
type browseModel struct {
	ctx        context.Context
	store      *weekstore.Store
	semester   string
	weeks      []string
	index      int
	view       string
	layoutOpts []layout.Option
	snap       weekstore.Snapshot
}

func newBrowseModel(ctx context.Context, store *weekstore.Store, semester string, weeks []string, start int, layoutOpts []layout.Option) browseModel {
	return browseModel{
		ctx:        ctx,
		store:      store,
		semester:   semester,
		weeks:      weeks,
		index:      start,
		view:       pipeline.ViewGrid,
		layoutOpts: layoutOpts,
		snap:       store.Snapshot(),
	}
}

func (m browseModel) selection() timetable.WeekSelection {
	return timetable.WeekSelection{SemesterID: m.semester, WeekID: m.weeks[m.index]}
}

// selectCmd runs Select off the UI goroutine.
func (m browseModel) selectCmd() tea.Cmd {
	store, ctx, sel := m.store, m.ctx, m.selection()
	return func() tea.Msg {
		return selectDoneMsg{err: store.Select(ctx, sel)}
	}
}

func (m browseModel) refreshCmd() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return selectDoneMsg{err: store.Refresh(ctx)}
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.selectCmd()
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.index > 0 {
				m.index--
				return m, m.selectCmd()
			}
		case "right", "l":
			if m.index < len(m.weeks)-1 {
				m.index++
				return m, m.selectCmd()
			}
		case "tab":
			if m.view == pipeline.ViewGrid {
				m.view = pipeline.ViewAgenda
			} else {
				m.view = pipeline.ViewGrid
			}
		case "r":
			return m, m.refreshCmd()
		}
	case snapshotMsg:
		// Snapshots can arrive out of order relative to key presses; keep
		// the newest generation.
		if s := weekstore.Snapshot(msg); s.Generation >= m.snap.Generation {
			m.snap = s
		}
	case selectDoneMsg:
		// Errors are already in the snapshot.
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(browseWeekStyle.Render(m.selection().String()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  (%d/%d)", m.index+1, len(m.weeks))))
	b.WriteString("  ")
	for _, v := range []string{pipeline.ViewGrid, pipeline.ViewAgenda} {
		if v == m.view {
			b.WriteString(browseActiveStyle.Render("[" + v + "]"))
		} else {
			b.WriteString(StyleDim.Render(" " + v + " "))
		}
	}
	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("←/→ week  tab view  r refresh  q quit"))
	b.WriteString("\n\n")

	if m.snap.Err != nil {
		b.WriteString(StyleError.Render(iconError + " " + errors.UserMessage(m.snap.Err)))
		b.WriteString("\n\n")
	}

	if m.snap.Periods == nil {
		b.WriteString(StyleDim.Render(render.LoadingMessage))
		b.WriteString("\n")
		return b.String()
	}
	if !m.snap.SessionsLoaded && m.snap.Err == nil {
		b.WriteString(StyleDim.Render(render.LoadingMessage))
		b.WriteString("\n")
		if m.snap.SessionsFor.IsZero() {
			return b.String()
		}
	}
	if !m.snap.SessionsFor.IsZero() && m.snap.SessionsFor != m.snap.Selection {
		b.WriteString(StyleDim.Render("showing " + m.snap.SessionsFor.String()))
		b.WriteString("\n")
	}

	if m.view == pipeline.ViewAgenda {
		b.WriteString(render.AgendaText(m.snap.Agenda()))
	} else {
		b.WriteString(render.GridText(m.snap.Grid(m.layoutOpts...)))
	}
	return b.String()
}
