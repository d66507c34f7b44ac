package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	indent = "  "
	gutter = "  "
)

type row struct {
	cells []string
	role  Role
}

// Table is an aligned text table. Widths are measured in terminal cells so
// styled or non-ASCII cells line up.
type Table struct {
	headers []string
	rows    []row
	align   []lipgloss.Position
}

// NewTable creates a table with the given column headers. Every column is
// left-aligned until AlignRight is called.
func NewTable(headers []string) *Table {
	align := make([]lipgloss.Position, len(headers))
	for i := range align {
		align[i] = lipgloss.Left
	}
	return &Table{headers: headers, align: align}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, row{cells: values})
}

// AlignRight right-aligns the given columns, e.g. times in 12h format.
func (t *Table) AlignRight(cols ...int) {
	for _, c := range cols {
		if c >= 0 && c < len(t.align) {
			t.align[c] = lipgloss.Right
		}
	}
}

// SetHighlightRow renders row idx in the Next style, typically today.
func (t *Table) SetHighlightRow(idx int) {
	t.setRole(idx, Next)
}

// SetDimRow renders row idx in the Past style.
func (t *Table) SetDimRow(idx int) {
	t.setRole(idx, Past)
}

func (t *Table) setRole(idx int, r Role) {
	if idx >= 0 && idx < len(t.rows) {
		t.rows[idx].role = r
	}
}

// Render returns the table, each line indented by two spaces.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range t.rows {
		for i, cell := range r.cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(indent + Bold(t.formatRow(t.headers, widths)) + "\n")

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim(indent+strings.Join(rules, gutter)) + "\n")

	for _, r := range t.rows {
		sb.WriteString(indent + Style(r.role, t.formatRow(r.cells, widths)) + "\n")
	}
	return sb.String()
}

// formatRow pads each cell to its column width.
func (t *Table) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = lipgloss.PlaceHorizontal(w, t.align[i], cell)
	}
	return strings.Join(parts, gutter)
}
