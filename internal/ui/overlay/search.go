package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchMsg is emitted on every keystroke for live filtering
type SearchMsg struct {
	Query string
}

// SearchOverlay is the single-line search bar. It filters by title or ID.
type SearchOverlay struct {
	input      textinput.Model
	matchCount int
	styles     *Styles
}

// NewSearchOverlay creates a search bar pre-filled with the active query
func NewSearchOverlay(query string) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search by title or ID..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(query)
	ti.Focus()

	return &SearchOverlay{
		input:  ti,
		styles: New(),
	}
}

// SetMatchCount updates the match count display
func (s *SearchOverlay) SetMatchCount(count int) {
	s.matchCount = count
}

// Query returns the current input
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			// Enter closes overlay but keeps filter active
			return s, func() tea.Msg { return CloseOverlayMsg{} }

		case tea.KeyEsc:
			s.input.SetValue("")
			return s, tea.Batch(
				func() tea.Msg { return SearchMsg{Query: ""} },
				func() tea.Msg { return CloseOverlayMsg{} },
			)
		}
	}

	prevValue := s.input.Value()
	s.input, cmd = s.input.Update(msg)

	if s.input.Value() != prevValue {
		query := s.input.Value()
		return s, tea.Batch(
			cmd,
			func() tea.Msg { return SearchMsg{Query: query} },
		)
	}

	return s, cmd
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	inputView := s.input.View()

	if s.input.Value() != "" {
		noun := "matches"
		if s.matchCount == 1 {
			noun = "match"
		}
		inputView += s.styles.MenuCount.Render(fmt.Sprintf(" (%d %s)", s.matchCount, noun))
	}

	return s.styles.SearchBar.Render(inputView)
}

// Title implements Overlay interface (returns empty for search bar)
func (s *SearchOverlay) Title() string {
	return ""
}

// Size implements Overlay interface (full-width single line)
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
