package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchForm is the free-text thread search prompt, opened from the browse
// view. Submitting starts a search-mode retrieval session; cancelling
// returns to browsing with the session untouched.
type searchForm struct {
	input textinput.Model
}

func newSearchForm() *searchForm {
	ti := textinput.New()
	ti.Placeholder = "search all posts"
	ti.Prompt = "? "
	if styles.FilterPrompt != nil {
		ti.PromptStyle = styles.FilterPrompt.Copy()
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = styles.FilterPlaceholder.Copy()
	}
	ti.Focus()
	ti.CharLimit = 200
	return &searchForm{input: ti}
}

func (m *Model) openSearchForm() {
	m.searchForm = newSearchForm()
	m.mode = ModeSearchForm
}

// handleSearchForm routes messages while the search prompt is open. It
// returns true when the message was consumed.
func (m *Model) handleSearchForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.searchForm == nil {
		m.mode = ModeBrowse
		return false, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.searchForm.input, cmd = m.searchForm.input.Update(msg)
		return true, cmd
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "esc":
		m.searchForm = nil
		m.mode = ModeBrowse
		return true, nil
	case "enter":
		text := strings.TrimSpace(m.searchForm.input.Value())
		m.searchForm = nil
		m.mode = ModeBrowse
		if text == "" {
			return true, nil
		}
		return true, m.startRetrieval(m.controller.Search(text))
	}
	var cmd tea.Cmd
	m.searchForm.input, cmd = m.searchForm.input.Update(msg)
	return true, cmd
}

func (m *Model) viewSearchForm(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, "Search all posts", "", m.searchForm.input.View(), "")
	help := "enter search  esc cancel"
	if styles.Footer != nil {
		help = styles.Footer.Render(help)
	}
	lines = append(lines, help)
	return strings.Join(lines, "\n")
}
