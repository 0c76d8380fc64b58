// Package formatter lays out results and racecards as aligned markdown tables.
package formatter

import (
	"html"
	"strings"

	"github.com/mattn/go-runewidth"

	"dcrhub/internal/models"
	"dcrhub/internal/view"
)

const minColumnWidth = 3

// Table is a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// FormatTable renders t as a markdown table whose columns are aligned by
// display width, so wide runes line up in a terminal.
func FormatTable(t Table) string {
	cells := make([][]string, 0, len(t.Rows)+2)
	cells = append(cells, escapeRow(t.Headers), make([]string, len(t.Headers)))

	for _, row := range t.Rows {
		cells = append(cells, escapeRow(row))
	}

	return strings.Join(layout(cells, 1), "\n")
}

// FormatMarkdown re-aligns every table found in content.
func FormatMarkdown(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		// Simple heuristic: a table row starts and ends with |
		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

func processTable(rows []string) []string {
	// A table needs at least a header and a separator.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		parts := strings.Split(row, "|")

		if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}

		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}

		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}

		table = append(table, cells)
	}

	separatorRowIdx := -1
	if isSeparator(table[1]) {
		separatorRowIdx = 1
	}

	return layout(table, separatorRowIdx)
}

func isSeparator(row []string) bool {
	for _, cell := range row {
		trim := strings.NewReplacer("-", "", ":", "", " ", "").Replace(cell)
		if trim != "" {
			return false
		}
	}

	return true
}

// layout pads every cell to its column's display width. The row at
// separatorRowIdx is rewritten as dashes.
func layout(table [][]string, separatorRowIdx int) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	for i := range colWidths {
		colWidths[i] = max(colWidths[i], minColumnWidth)
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := range colCount {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}

func escapeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = escapeCell(cell)
	}

	return out
}

func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	return strings.ReplaceAll(s, "|", `\|`)
}

// ResultsTable lays out display records. Fields are unescaped back to plain
// text because a terminal does not interpret HTML entities.
func ResultsTable(records []models.DisplayRecord) Table {
	t := Table{Headers: []string{"Date", "Time", "Course", "Race", "Winner", "Pos", "SP", "Note", "Replays"}}

	for _, r := range records {
		title := r.Title
		if r.RaceNumber != "" {
			title = "R" + r.RaceNumber + " " + title
		}

		if r.Handicap {
			title += " (Hcp)"
		}

		links := make([]string, 0, len(r.Links))
		for _, l := range r.Links {
			links = append(links, l.Label+" "+l.URL)
		}

		t.Rows = append(t.Rows, plain(
			r.Date, r.OffTime, r.Course, strings.TrimSpace(title), r.Horse,
			r.Position, r.StartingPrice, r.Note, strings.Join(links, ", "),
		))
	}

	return t
}

// RunnersTable lays out the runners of one card race.
func RunnersTable(race models.CardRace) Table {
	t := Table{Headers: []string{"No", "Horse", "Jockey", "Trainer", "Age", "Wgt", "Dr", "Odds"}}

	for _, r := range race.Runners {
		t.Rows = append(t.Rows, []string{r.No, r.Horse, r.Jockey, r.Trainer, r.Age, r.Weight, r.Draw, r.Odds})
	}

	return t
}

// ResultsMarkdown renders a status line followed by the results table.
func ResultsMarkdown(records []models.DisplayRecord, status string) string {
	var sb strings.Builder

	sb.WriteString(html.UnescapeString(status))
	sb.WriteString("\n\n")

	if len(records) == 0 {
		sb.WriteString(view.EmptyMessage)
		sb.WriteString("\n")

		return sb.String()
	}

	sb.WriteString(FormatTable(ResultsTable(records)))
	sb.WriteString("\n")

	return sb.String()
}

// CardsMarkdown renders one section per meeting and one table per race.
func CardsMarkdown(meetings []models.Meeting, status string) string {
	var sb strings.Builder

	sb.WriteString(status)
	sb.WriteString("\n")

	for _, m := range meetings {
		sb.WriteString("\n## " + escapeCell(m.Course) + " · " + escapeCell(m.Date) + "\n")

		for _, race := range m.Races {
			sb.WriteString("\n### " + escapeCell(race.OffTime) + " · " + escapeCell(race.Title) + "\n\n")
			sb.WriteString(FormatTable(RunnersTable(race)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func plain(cells ...string) []string {
	for i, c := range cells {
		cells[i] = html.UnescapeString(c)
	}

	return cells
}
