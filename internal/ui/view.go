package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/threadnav/topic-browser/internal/format/table"
	"github.com/threadnav/topic-browser/internal/retrieval"
	"github.com/threadnav/topic-browser/internal/topic"
)

const (
	threadPanelMinWidth = 40  // minimum cols for the thread panel; below this no split
	threadPanelFraction = 0.6 // fraction of total width given to the thread panel
)

var (
	panelBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelPageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// hasSidePanel reports whether the terminal is wide enough to render the
// thread panel next to the topic list.
func (m *Model) hasSidePanel() bool {
	return m.threadPanelWidth() > 0
}

// threadPanelWidth returns the width in columns for the right-hand thread
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) threadPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * threadPanelFraction)
	if w < threadPanelMinWidth {
		return 0
	}
	return w
}

// topicColumnWidth returns the width available for the left-hand topic column.
func (m *Model) topicColumnWidth() int {
	return m.width - m.threadPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.browseHeader()
	if m.mode == ModeSearchForm && m.searchForm != nil {
		return m.viewSearchForm(header)
	}
	if m.hasSidePanel() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

// viewVertical is the single-column layout used when the terminal is too
// narrow for the side panel: topic list on top, thread list below.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.topicLines(m.width)...)
	lines = append(lines, styledLine{})
	lines = append(lines, m.threadLines(m.width)...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(m.bottomBar(), m.width)...)
	return renderLines(lines)
}

// viewSideBySide renders the topic list on the left and the thread panel on
// the right, with the status line and filter prompt spanning the bottom.
func (m *Model) viewSideBySide(header string) string {
	topicW := m.topicColumnWidth()
	panelW := m.threadPanelWidth()
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	contentLines = append(contentLines, m.topicLines(topicW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerHint, style: styles.Footer})
	}

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}

	contentLines = applyWidth(contentLines, topicW)
	leftStr := renderLines(contentLines)

	// Pad/truncate every rendered row to exactly topicW visible columns so
	// JoinHorizontal keeps the panel flush to the right edge regardless of
	// content length or cursor-blink state.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > topicW {
			leftRows[i] = truncate.StringWithTail(row, uint(topicW-1), "…")
		} else if w < topicW {
			leftRows[i] = row + strings.Repeat(" ", topicW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderThreadPanel(panelW, panelH)
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	bottomLines := applyWidth(m.bottomBar(), m.width)
	return topSection + "\n" + renderLines(bottomLines)
}

const footerHint = "↑/↓ move  enter select  tab mark  ctrl+s search  pgdn more  esc clear  ctrl+c quit"

// bottomBar builds the two full-width rows under the columns: the alert or
// error line, then the filter prompt.
func (m *Model) bottomBar() []styledLine {
	var statusLine styledLine
	switch {
	case m.alertMsg != "":
		statusLine = styledLine{text: m.alertMsg, style: styles.Error}
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendLastErr != "":
		statusLine = styledLine{text: fmt.Sprintf("Catalog: %s", m.backendLastErr), style: styles.Error}
	}
	return []styledLine{statusLine, {text: m.filterPrompt()}}
}

// topicLines renders the visible projection of the topic tree.
func (m *Model) topicLines(width int) []styledLine {
	b := m.browse
	m.syncViewport()
	lines := make([]styledLine, 0, len(b.Visible))
	display := b.Visible
	start := 0
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(display) > maxItems {
		start = b.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(display) {
			start = len(display) - maxItems
			if start < 0 {
				start = 0
			}
			b.ViewportOffset = start
		}
		display = display[start : start+maxItems]
	}
	if len(b.Visible) == 0 {
		msg := "(no topics)"
		if b.Query != "" {
			msg = fmt.Sprintf("No topics matching %q", b.Query)
		}
		return append(lines, styledLine{text: msg, style: styles.Info})
	}
	for i, row := range display {
		lines = append(lines, m.buildTopicLine(row, start+i, width))
	}
	return lines
}

// buildTopicLine constructs a single styledLine for a topic row. width is the
// target column width; when > 0 the text is padded so that the active row's
// background spans the full container.
func (m *Model) buildTopicLine(row topic.Row, idx int, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	b := m.browse
	mark := ""
	if b.IsSelected(row.Node.ID) {
		mark = "✓ "
		lineStyle = styles.MarkedItem
	}
	if idx == b.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	cohort := ""
	if row.Node.Cohorted {
		cohort = " ⊘"
	}
	indent := strings.Repeat("  ", row.Depth)
	fullText := indicator + " " + indent + mark + row.Node.Title + cohort
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// threadLines renders the thread list inline for the vertical layout.
func (m *Model) threadLines(width int) []styledLine {
	lines := []styledLine{{text: m.threadPanelTitle(), style: styles.Header}}
	threads := m.threads.Entries()
	if len(threads) == 0 {
		text := "(no threads)"
		if m.loading {
			text = "Loading threads…"
		}
		return append(lines, styledLine{text: text, style: styles.Loading})
	}
	rows := table.Format(table.ThreadRows(threads, width/2), table.ThreadAlignments())
	for i, row := range rows {
		style := styles.ThreadTitle
		if i == m.threadFocus {
			style = styles.SelectedItem
		}
		lines = append(lines, styledLine{text: row, style: style})
	}
	return lines
}

// renderThreadPanel builds the bordered thread box as a string with exactly
// height rows and totalWidth columns.
func (m *Model) renderThreadPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := m.threadPanelTitle()
	pageInfo := ""
	var contentLines []string

	focusRow := -1
	threads := m.threads.Entries()
	switch {
	case len(threads) > 0:
		contentLines = table.Format(table.ThreadRows(threads, innerW/2), table.ThreadAlignments())
		offset := 0
		if len(contentLines) > innerH {
			// Scroll so the focused row stays visible.
			offset = m.threadFocus - innerH + 1
			if offset < 0 {
				offset = 0
			}
			if max := len(contentLines) - innerH; offset > max {
				offset = max
			}
			contentLines = contentLines[offset : offset+innerH]
		}
		if m.threadFocus >= offset && m.threadFocus < offset+len(contentLines) {
			focusRow = m.threadFocus - offset
		}
		session := m.controller.Session()
		pageInfo = fmt.Sprintf(" page %d ", session.CurrentPage+1)
		if m.controller.HasMorePages() {
			pageInfo = fmt.Sprintf(" page %d + ", session.CurrentPage+1)
		}
	case m.loading:
		contentLines = []string{"Loading threads…"}
	default:
		contentLines = []string{"(no threads)"}
	}

	titleSeg := " " + titleLabel + " "
	pageSeg := pageInfo
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(pageSeg))
	if dashes < 0 {
		pageSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := panelBorderStyle.Render(tlc+hz) +
		styles.Header.Render(titleSeg) +
		panelBorderStyle.Render(strings.Repeat(hz, dashes)) +
		panelPageStyle.Render(pageSeg) +
		panelBorderStyle.Render(hz+trc)
	bottomLine := panelBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := styles.ThreadTitle
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content = content + strings.Repeat(" ", innerW-w)
		}
		rowStyle := bodyStyle
		if i == focusRow {
			rowStyle = styles.SelectedItem
		}
		if rowStyle != nil {
			content = rowStyle.Render(content)
		}
		rows = append(rows, panelBorderStyle.Render(vt)+content+panelBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) threadPanelTitle() string {
	title := m.selectionLabel()
	if m.loading {
		title += " (loading…)"
	}
	return title
}

// selectionLabel names the current retrieval session for the panel header.
func (m *Model) selectionLabel() string {
	session := m.controller.Session()
	switch session.Mode {
	case retrieval.ModeFollowed:
		return "posts i'm following"
	case retrieval.ModeSearch:
		return fmt.Sprintf("search %q", session.SearchText)
	case retrieval.ModeCommentables:
		if len(m.lastBreadcrumb) > 0 {
			return strings.ToLower(strings.Join(m.lastBreadcrumb, " / "))
		}
		return fmt.Sprintf("%d topics", len(session.DiscussionIDs))
	default:
		return "all discussions"
	}
}

func (m *Model) browseHeader() string {
	label := m.selectionLabel()
	if m.controller.CohortControlVisible() {
		label += "  [cohort]"
	}
	return label
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: status line + filter prompt
	if header := m.browseHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.hasSidePanel() {
		// Vertical layout shares the column with the inline thread list.
		used += 2 + len(m.threads.Entries())
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
