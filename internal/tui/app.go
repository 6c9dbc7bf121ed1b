package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelist/internal/service"
	"github.com/mmcdole/cinelist/internal/tui/components"
	"github.com/mmcdole/cinelist/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateForm
	StateSorting
)

const (
	// header, search line, blank, status, help
	chromeHeight = 5

	suggestionLimit = 3
	statusTimeout   = 4 * time.Second
)

// PosterOpener opens a poster URL outside the terminal
type PosterOpener interface {
	Open(url string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState

	Svc     *service.MovieService
	Reports <-chan error
	Opener  PosterOpener // optional

	// UI Components
	List      components.MovieList
	Form      components.MovieForm
	SortModal components.SortModal
	search    textinput.Model
	help      help.Model
	keys      KeyMap

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
}

// NewModel creates a new application model. reports may be nil.
func NewModel(svc *service.MovieService, reports <-chan error) Model {
	ti := textinput.New()
	ti.Placeholder = "search by title..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.SetValue(svc.ViewState().SearchTerm)

	m := Model{
		State:     StateBrowsing,
		Svc:       svc,
		Reports:   reports,
		List:      components.NewMovieList(),
		Form:      components.NewMovieForm(),
		SortModal: components.NewSortModal(),
		search:    ti,
		help:      help.New(),
		keys:      DefaultKeyMap(),
	}
	m.refresh()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return WaitForReport(m.Reports)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.List.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))
		return m, nil

	case ReportMsg:
		m.Svc.SetError(msg.Err)
		cmd := m.setStatus(m.Svc.Error(), true)
		return m, tea.Batch(cmd, WaitForReport(m.Reports))

	case posterOpenedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Could not open poster: %v", msg.err), true)
		}
		return m, m.setStatus(fmt.Sprintf("Opened poster for %q", msg.title), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.State == StateSearching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	if m.State == StateForm {
		var cmd tea.Cmd
		m.Form, cmd, _ = m.Form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateForm:
		return m.handleFormKey(msg)
	case StateSorting:
		return m.handleSortKey(msg)
	case StateSearching:
		return m.handleSearchKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(m.Height-chromeHeight, 1)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.List.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.List.MoveDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.List.MoveUp(page / 2)
	case key.Matches(msg, m.keys.PageDn):
		m.List.MoveDown(page / 2)
	case key.Matches(msg, m.keys.Home):
		m.List.Top()
	case key.Matches(msg, m.keys.End):
		m.List.Bottom()

	case key.Matches(msg, m.keys.Add):
		m.Svc.CancelEdit()
		m.Form.ShowAdd()
		m.State = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		sel, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		if err := m.Svc.StartEdit(sel.ID); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.Form.ShowEdit(sel)
		m.State = StateForm
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		sel, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		if m.Svc.Delete(sel.ID) {
			m.refresh()
			return m, m.setStatus(fmt.Sprintf("Deleted %q", sel.Title), false)
		}

	case key.Matches(msg, m.keys.Open):
		sel, ok := m.List.Selected()
		if !ok {
			return m, nil
		}
		if m.Opener == nil {
			return m, m.setStatus("No poster viewer available", true)
		}
		return m, OpenPoster(m.Opener, sel)

	case key.Matches(msg, m.keys.Search):
		m.State = StateSearching
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Sort):
		mode := m.Svc.CycleSort()
		m.refresh()
		return m, m.setStatus("Sorted by "+mode.String(), false)

	case key.Matches(msg, m.keys.SortBy):
		m.SortModal.Show(m.Svc.ViewState().Sort)
		m.State = StateSorting

	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.Svc.SetSearch("")
			m.refresh()
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.State = StateBrowsing
		return m, nil
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.Svc.SetSearch("")
		m.refresh()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.Svc.ViewState().SearchTerm {
		m.Svc.SetSearch(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, sel := m.SortModal.HandleKey(msg.String())
	if sel != nil {
		m.Svc.SetSort(*sel)
		m.refresh()
	}
	if !m.SortModal.IsVisible() {
		m.State = StateBrowsing
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var res components.FormResult
	m.Form, cmd, res = m.Form.Update(msg)

	switch res {
	case components.FormCancelled:
		m.Svc.CancelEdit()
		m.State = StateBrowsing
		return m, nil

	case components.FormSubmitted:
		editing := m.Form.IsEditing()
		values := m.Form.Values()
		if err := m.Svc.Submit(values); err != nil {
			m.Form.SetError(m.Svc.Error())
			return m, nil
		}
		m.Form.Reset()
		m.Form.Hide()
		m.State = StateBrowsing
		m.refresh()

		verb := "Added"
		if editing {
			verb = "Saved"
		}
		return m, m.setStatus(fmt.Sprintf("%s %q", verb, values.Title), false)
	}
	return m, cmd
}

// refresh recomputes the derived view
func (m *Model) refresh() {
	m.List.SetItems(m.Svc.View(), m.Svc.ViewState().SearchTerm)
}

// setStatus shows a transient message and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// View renders the application
func (m Model) View() string {
	header := m.renderHeader()

	var body string
	switch m.State {
	case StateForm:
		body = m.placeModal(m.Form.View())
	case StateSorting:
		body = m.placeModal(m.SortModal.View())
	default:
		body = m.renderBody()
	}

	var status string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			status = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			status = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderSearch(),
		body,
		status,
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	vs := m.Svc.ViewState()
	count := fmt.Sprintf("%d of %d", m.List.Len(), m.Svc.Collection().Len())
	return styles.TitleStyle.Render("My Favorite Movies") + "  " +
		styles.DimStyle.Render(count) + "  " +
		styles.AccentStyle.Render("sort: "+vs.Sort.String())
}

func (m Model) renderSearch() string {
	if m.State == StateSearching || m.search.Value() != "" {
		return m.search.View()
	}
	return styles.DimStyle.Render("press / to search")
}

func (m Model) renderBody() string {
	if m.List.Len() == 0 && m.Svc.ViewState().SearchTerm != "" {
		lines := []string{styles.DimStyle.Render("No movies match your search.")}
		if sugg := m.Svc.Suggestions(suggestionLimit); len(sugg) > 0 {
			titles := make([]string, len(sugg))
			for i, s := range sugg {
				titles[i] = s.Title
			}
			lines = append(lines, styles.DimStyle.Render("Did you mean: ")+
				styles.AccentStyle.Render(strings.Join(titles, ", "))+"?")
		}
		return strings.Join(lines, "\n")
	}
	return m.List.View()
}

func (m Model) placeModal(modal string) string {
	if m.Width == 0 || m.Height == 0 {
		return modal
	}
	return lipgloss.Place(m.Width, max(m.Height-chromeHeight, lipgloss.Height(modal)),
		lipgloss.Center, lipgloss.Center, modal)
}
