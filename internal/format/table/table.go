package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/threadnav/topic-browser/internal/forum"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Cell widths are measured ignoring ANSI escape sequences so
// styled cells line up with plain ones.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			width := ansi.PrintableRuneWidth(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			width := widths[c] - ansi.PrintableRuneWidth(cell)
			if width < 0 {
				width = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, width)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, width)
			}
		}
		out[i] = b.String()
	}
	return out
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		b.WriteByte(' ')
	}
}

// ThreadRows projects threads into title/author/replies/updated cells
// ready for Format. Titles wider than titleWidth are truncated with an
// ellipsis.
func ThreadRows(threads []forum.Thread, titleWidth int) [][]string {
	rows := make([][]string, 0, len(threads))
	for _, thread := range threads {
		title := thread.Title
		if thread.Pinned {
			title = "* " + title
		}
		if titleWidth > 0 {
			title = Truncate(title, titleWidth)
		}
		rows = append(rows, []string{
			title,
			thread.Username,
			fmt.Sprintf("%d", thread.CommentsCount),
			relativeAge(thread.UpdatedAt, time.Now()),
		})
	}
	return rows
}

// ThreadAlignments matches the columns produced by ThreadRows.
func ThreadAlignments() []Alignment {
	return []Alignment{AlignLeft, AlignLeft, AlignRight, AlignRight}
}

// Truncate shortens text to at most width printable cells, appending an
// ellipsis when anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 || ansi.PrintableRuneWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func relativeAge(stamp string, now time.Time) string {
	parsed, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	age := now.Sub(parsed)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
