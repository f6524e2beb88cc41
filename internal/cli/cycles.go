package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	ontoerrors "github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/pipeline"
)

// cyclesOpts holds options for the cycles command.
type cyclesOpts struct {
	limit       int
	mode        string
	noCache     bool
	interactive bool
}

// cyclesCommand creates the cycles command.
func (c *CLI) cyclesCommand() *cobra.Command {
	opts := &cyclesOpts{}

	cmd := &cobra.Command{
		Use:   "cycles <source>",
		Short: "Enumerate equivalence cycles in a hierarchy",
		Long: `Cycles lists the elementary cycles of the asserted hierarchy. Each cycle is
a set of mutually equivalent classes. Enumeration stops after --limit cycles;
use --interactive to browse the results in a scrollable list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCycles(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 100, "maximum cycles to enumerate (0 for unlimited)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.DefaultMode, "transitivity mode (asserted, powers, warshall, reasoning)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse cycles interactively")

	return cmd
}

// runCycles builds the hierarchy and enumerates its cycles.
func (c *CLI) runCycles(cmd *cobra.Command, src string, opts *cyclesOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Source: src,
		Mode:   opts.mode,
		Logger: c.Logger,
	}

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		return err
	}

	cycles, err := result.Hierarchy.CollectCycles(opts.limit)
	truncated := false
	if err != nil {
		if ontoerrors.GetCode(err) != ontoerrors.ErrCodeResourceExhausted {
			return err
		}
		truncated = true
	}

	if len(cycles) == 0 {
		printSuccess("No cycles found")
		return nil
	}

	if opts.interactive {
		p := tea.NewProgram(NewCycleListModel(cycles))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	}

	printWarning("Found %d cycles", len(cycles))
	for _, cycle := range cycles {
		printDetail("%s", strings.Join(cycle, " "+iconArrow+" "))
	}
	if truncated {
		printInfo("Enumeration stopped at %d cycles; raise --limit to see more", opts.limit)
	}
	return nil
}

// =============================================================================
// CycleListModel - Interactive cycle browsing
// =============================================================================

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// CycleListModel is the bubbletea model for browsing enumerated cycles.
type CycleListModel struct {
	Cycles [][]string
	Cursor int
	Height int
	Offset int
}

// NewCycleListModel creates a new cycle list model.
func NewCycleListModel(cycles [][]string) CycleListModel {
	return CycleListModel{
		Cycles: cycles,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m CycleListModel) Init() tea.Cmd {
	return nil
}

func (m CycleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Cycles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CycleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Equivalence Cycles"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Cycles) {
		end = len(m.Cycles)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cycle := m.Cycles[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(cycle)),
			strings.Join(cycle, " "+iconArrow+" "),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Size", "Classes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Cycles) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Cycles) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("showing %d-%d of %d", m.Offset+1, end, len(m.Cycles))))
		b.WriteString("\n")
	}

	return b.String()
}
