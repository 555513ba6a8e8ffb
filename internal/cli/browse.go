package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stagewalk/stagewalk/pkg/pipeline"
	"github.com/stagewalk/stagewalk/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive path browser
// for an analysis result.
func (c *CLI) browseCommand() *cobra.Command {
	noCache := false

	cmd := &cobra.Command{
		Use:   "browse <config|report.json>",
		Short: "Browse classified paths interactively",
		Long: `Browse the classified paths of an analysis in an interactive
terminal UI. Select a path to see its full track with the skills
unlocked along the way.

A .json argument is read as a saved report (from analyze --output);
anything else is treated as a level config and analyzed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, path string, noCache bool) error {
	rep, err := c.loadBrowseReport(cmd, path, noCache)
	if err != nil {
		return err
	}

	rows := flattenPaths(rep)
	if len(rows) == 0 {
		printInfo("No paths to browse (no entry stages in %s)", path)
		return nil
	}

	p := tea.NewProgram(newPathListModel(rows))
	_, err = p.Run()
	return err
}

func (c *CLI) loadBrowseReport(cmd *cobra.Command, path string, noCache bool) (*report.Report, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return report.ReadFile(path)
	}

	ctx := cmd.Context()
	runner := c.newRunner(ctx, noCache)
	defer runner.Cache.Close()

	result, err := runner.Execute(ctx, pipeline.Options{ConfigPath: path})
	if err != nil {
		return nil, err
	}
	return result.Report, nil
}

// pathRow is one browsable path together with the entry it belongs to.
type pathRow struct {
	Entry string
	Path  report.Path
}

func flattenPaths(rep *report.Report) []pathRow {
	var rows []pathRow
	for _, entry := range rep.Entries {
		for _, p := range entry.Paths {
			rows = append(rows, pathRow{Entry: entry.Stage, Path: p})
		}
	}
	return rows
}

// PathListModel is the bubbletea model for browsing classified paths.
type PathListModel struct {
	Rows     []pathRow
	Cursor   int
	Height   int
	Offset   int
	Detailed bool
}

func newPathListModel(rows []pathRow) PathListModel {
	return PathListModel{
		Rows:   rows,
		Height: 15,
	}
}

func (m PathListModel) Init() tea.Cmd {
	return nil
}

func (m PathListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detailed {
				m.Detailed = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detailed = !m.Detailed
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PathListModel) View() string {
	if m.Detailed {
		return m.detailView()
	}
	return m.listView()
}

func (m PathListModel) listView() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Paths"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]
		icon, style := outcomeStyle(row.Path.Outcome)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		track := strings.Join(row.Path.Track, " "+iconArrow+" ")
		line := fmt.Sprintf("%s%s %-9s %s", cursor, style.Render(icon), row.Path.Outcome, track)

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

func (m PathListModel) detailView() string {
	row := m.Rows[m.Cursor]
	icon, style := outcomeStyle(row.Path.Outcome)

	var b strings.Builder
	b.WriteString(styleTitle.Render("Path Detail"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  entry:   %s\n", styleValue.Render(row.Entry)))
	b.WriteString(fmt.Sprintf("  outcome: %s %s\n", style.Render(icon), style.Render(row.Path.Outcome)))
	b.WriteString("\n")

	for i, stage := range row.Path.Track {
		connector := "├─"
		if i == len(row.Path.Track)-1 {
			connector = "└─"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render(connector), styleValue.Render(stage)))
	}

	b.WriteString("\n")
	if len(row.Path.Skills) > 0 {
		b.WriteString("  skills: " + listDimStyle.Render(strings.Join(row.Path.Skills, ", ")))
	} else {
		b.WriteString("  skills: " + listDimStyle.Render("none"))
	}
	b.WriteString("\n")

	return b.String()
}
