package cmd

import (
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	colorAccent = lipgloss.Color("#8B5CF6")
	colorOK     = lipgloss.Color("#22C55E")
	colorFail   = lipgloss.Color("#F43F5E")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(colorOK)
	failStyle   = lipgloss.NewStyle().Foreground(colorFail)
)

// table is a plain column report. Columns listed in numeric are right
// aligned. A nil row renders as a separator rule.
type table struct {
	headers []string
	numeric map[int]bool
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers, numeric: map[int]bool{}}
}

func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.numeric[c] = true
	}
	return t
}

func (t *table) add(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) rule() { t.rows = append(t.rows, nil) }

func (t *table) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(w) {
				w[i] = max(w[i], lipgloss.Width(cell))
			}
		}
	}
	return w
}

func (t *table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		gap := strings.Repeat(" ", width-lipgloss.Width(cell))
		if t.numeric[i] {
			parts[i] = gap + cell
		} else {
			parts[i] = cell + gap
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func (t *table) render(w io.Writer) {
	widths := t.widths()
	total := 2 * (len(widths) - 1)
	for _, n := range widths {
		total += n
	}
	rule := strings.Repeat("─", total)

	var b strings.Builder
	b.WriteString(headerStyle.Render(t.line(t.headers, widths)) + "\n")
	b.WriteString(rule + "\n")
	for _, row := range t.rows {
		if row == nil {
			b.WriteString(rule + "\n")
			continue
		}
		b.WriteString(t.line(row, widths) + "\n")
	}
	lipgloss.Fprint(w, b.String())
}

func title(w io.Writer, s string) {
	lipgloss.Fprintln(w, titleStyle.Render(s))
}

func status(ok bool) string {
	if ok {
		return okStyle.Render("✓")
	}
	return failStyle.Render("✗")
}
