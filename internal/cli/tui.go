package cli

import (
	"fmt"
	"maps"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

var formatDescriptions = map[string]string{
	pipeline.FormatSVG:  "vector image",
	pipeline.FormatPNG:  "raster image",
	pipeline.FormatPDF:  "document (needs rsvg-convert)",
	pipeline.FormatJSON: "layout document",
}

// FormatPickerModel is the bubbletea model for choosing output formats. It
// previews the diagram's regions above the list.
type FormatPickerModel struct {
	Diagram  *diagram.Diagram
	Formats  []string
	Chosen   map[string]bool
	Cursor   int
	Done     bool
	Canceled bool
}

// NewFormatPickerModel creates a picker with the formats in preselected
// already checked.
func NewFormatPickerModel(d *diagram.Diagram, preselected []string) FormatPickerModel {
	m := FormatPickerModel{
		Diagram: d,
		Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON},
		Chosen:  make(map[string]bool),
	}
	for _, f := range preselected {
		m.Chosen[f] = true
	}
	return m
}

// Selected returns the checked formats in list order.
func (m FormatPickerModel) Selected() []string {
	var out []string
	for _, f := range m.Formats {
		if m.Chosen[f] {
			out = append(out, f)
		}
	}
	return out
}

func (m FormatPickerModel) Init() tea.Cmd {
	return nil
}

func (m FormatPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Canceled = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Formats)-1 {
			m.Cursor++
		}
	case " ", "x":
		f := m.Formats[m.Cursor]
		m.Chosen = maps.Clone(m.Chosen)
		m.Chosen[f] = !m.Chosen[f]
	case "enter":
		if len(m.Selected()) == 0 {
			return m, nil
		}
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m FormatPickerModel) View() string {
	var b strings.Builder

	if m.Diagram != nil {
		b.WriteString(StyleTitle.Render(fmt.Sprintf("Diagram (%d sets, fit error %.2g)", m.Diagram.Arity(), m.Diagram.FitError())))
		b.WriteString("\n")
		b.WriteString(regionTable(m.Diagram))
		b.WriteString("\n\n")
	}

	b.WriteString(StyleTitle.Render("Select Output Formats"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ render  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Formats {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Chosen[f] {
			box = StyleSuccess.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %-5s %s", cursor, box, f, listDimStyle.Render(formatDescriptions[f]))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// regionTable renders one row per region: key, size, target and drawn area.
func regionTable(d *diagram.Diagram) string {
	rows := make([][]string, 0, len(d.Regions))
	for _, r := range d.Regions {
		anchor := "-"
		if a, ok := d.Label(string(r.Key)); ok {
			anchor = "placed"
			if a.Fallback {
				anchor = "fallback"
			}
		}
		rows = append(rows, []string{
			string(r.Key),
			fmt.Sprintf("%g", r.Size),
			fmt.Sprintf("%.4f", r.TargetArea),
			fmt.Sprintf("%.4f", r.Area),
			anchor,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Region", "Size", "Target", "Area", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 4 && row >= 0 && row < len(rows) && rows[row][4] == "fallback" {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// pickFormats runs the picker and returns the chosen formats, or nil when
// the user quit.
func pickFormats(d *diagram.Diagram, preselected []string) ([]string, error) {
	final, err := tea.NewProgram(NewFormatPickerModel(d, preselected)).Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(FormatPickerModel)
	if !ok || !fm.Done {
		return nil, nil
	}
	return fm.Selected(), nil
}
