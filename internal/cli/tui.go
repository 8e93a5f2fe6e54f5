package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mindmap/pkg/outline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RootListModel - Interactive top-level title selection
// =============================================================================

// RootListModel is the bubbletea model for picking which top-level title of
// a document to draw.
type RootListModel struct {
	Forest   outline.Forest
	Cursor   int
	Selected int // -1 until a title is chosen
	Height   int
	Offset   int
}

// NewRootListModel creates a new root list model.
func NewRootListModel(forest outline.Forest) RootListModel {
	return RootListModel{
		Forest:   forest,
		Selected: -1,
		Height:   15,
	}
}

func (m RootListModel) Init() tea.Cmd {
	return nil
}

func (m RootListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Forest)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m RootListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Top-Level Title"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Forest))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		root := m.Forest[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		sub := outline.Forest{root}
		rows = append(rows, []string{cursor, strconv.Itoa(i), root.Text, strconv.Itoa(sub.Count()), strconv.Itoa(sub.Depth())})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Title", "Titles", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Forest))))

	return b.String()
}

// =============================================================================
// Root Selection
// =============================================================================

// errNoSelection is returned when the picker is closed without choosing.
var errNoSelection = fmt.Errorf("no title selected")

// pickRoot runs the root picker and returns the chosen index. Forests with
// fewer than two trees are answered without prompting.
func pickRoot(ctx context.Context, forest outline.Forest) (int, error) {
	if len(forest) < 2 {
		return 0, nil
	}
	final, err := tea.NewProgram(NewRootListModel(forest), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("root picker: %w", err)
	}
	m, ok := final.(RootListModel)
	if !ok || m.Selected < 0 {
		return 0, errNoSelection
	}
	return m.Selected, nil
}
