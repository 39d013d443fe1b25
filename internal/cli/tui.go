package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// OutlineModel - Interactive slide outline browser
// =============================================================================

// OutlineModel is the bubbletea model for browsing a deck outline.
// It has two states: the slide list and a single slide's detail view.
type OutlineModel struct {
	Phrase string
	Slides []slideOutline
	Cursor int
	Height int
	Offset int
	Detail bool
}

// newOutlineModel creates an outline browser over the composed slides.
func newOutlineModel(phrase string, slides []slideOutline) OutlineModel {
	return OutlineModel{
		Phrase: phrase,
		Slides: slides,
		Height: 15,
	}
}

func (m OutlineModel) Init() tea.Cmd {
	return nil
}

func (m OutlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Slides)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Slides) > 0 {
				m.Detail = true
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

func (m OutlineModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

// listView renders the scrolling slide table.
func (m OutlineModel) listView() string {
	var b strings.Builder

	title := "Slide Outline"
	if m.Phrase != "" {
		title = "Slide Outline · " + m.Phrase
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Slides) {
		end = len(m.Slides)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Slides[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		charts := "—"
		if s.Charts > 0 {
			charts = fmt.Sprintf("%d", s.Charts)
		}
		tableRows := "—"
		if s.Rows > 0 {
			tableRows = fmt.Sprintf("%d", s.Rows)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", s.Index+1),
			s.Kind,
			truncate(s.Title, 40),
			charts,
			tableRows,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Kind", "Title", "Charts", "Rows").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Slides) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Slides))))

	return b.String()
}

// detailView renders one slide's blocks.
func (m OutlineModel) detailView() string {
	s := m.Slides[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Slide %d · %s", s.Index+1, fallbackTitle(s))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for _, block := range s.Detail {
		for i, line := range strings.Split(block, "\n") {
			if i == 0 {
				b.WriteString("  " + listNormalStyle.Render(line))
			} else {
				b.WriteString("\n    " + listDimStyle.Render(line))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %d text blocks · %d charts · %d table rows",
		s.Kind, s.Texts, s.Charts, s.Rows)))

	return b.String()
}

// fallbackTitle names untitled slides by their kind.
func fallbackTitle(s slideOutline) string {
	if s.Title != "" {
		return s.Title
	}
	return "(" + s.Kind + ")"
}

// truncate clamps s to max runes with a trailing ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
