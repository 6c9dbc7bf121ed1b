package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/tui/styles"
)

// FormResult is what the user did in the last Update
type FormResult int

const (
	FormNone FormResult = iota
	FormSubmitted
	FormCancelled
)

const (
	fieldTitle = iota
	fieldYear
	fieldPoster
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Year", "Poster"}

// MovieForm is the modal used for both adding and editing a movie
type MovieForm struct {
	visible bool
	editing bool
	inputs  [fieldCount]textinput.Model
	focus   int
	err     string
}

// NewMovieForm creates a hidden form
func NewMovieForm() MovieForm {
	var f MovieForm
	placeholders := [fieldCount]string{"The Matrix", "1999", "https://example.com/poster.jpg"}
	limits := [fieldCount]int{200, 4, 2048}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	return f
}

// ShowAdd opens an empty form for a new movie
func (f *MovieForm) ShowAdd() {
	f.show(domain.MovieFields{}, false)
}

// ShowEdit opens the form pre-filled with an existing movie
func (f *MovieForm) ShowEdit(m domain.Movie) {
	f.show(m.Fields(), true)
}

func (f *MovieForm) show(fields domain.MovieFields, editing bool) {
	f.visible = true
	f.editing = editing
	f.err = ""
	f.inputs[fieldTitle].SetValue(fields.Title)
	f.inputs[fieldYear].SetValue(fields.Year)
	f.inputs[fieldPoster].SetValue(fields.Poster)
	f.setFocus(fieldTitle)
}

// Reset clears the fields but keeps the form open (after a successful add)
func (f *MovieForm) Reset() {
	f.show(domain.MovieFields{}, f.editing)
}

// Hide dismisses the form
func (f *MovieForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f MovieForm) IsVisible() bool {
	return f.visible
}

// IsEditing returns whether the form edits an existing movie
func (f MovieForm) IsEditing() bool {
	return f.editing
}

// SetError shows a validation message above the fields ("" clears it)
func (f *MovieForm) SetError(msg string) {
	f.err = msg
}

// Values returns the raw field values
func (f MovieForm) Values() domain.MovieFields {
	return domain.MovieFields{
		Title:  f.inputs[fieldTitle].Value(),
		Year:   f.inputs[fieldYear].Value(),
		Poster: f.inputs[fieldPoster].Value(),
	}
}

func (f *MovieForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Update handles input events, returns (form, cmd, result)
func (f MovieForm) Update(msg tea.Msg) (MovieForm, tea.Cmd, FormResult) {
	if !f.visible {
		return f, nil, FormNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if f.focus < fieldPoster {
				f.setFocus(f.focus + 1)
				return f, nil, FormNone
			}
			return f, nil, FormSubmitted
		case "ctrl+s":
			return f, nil, FormSubmitted
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, FormNone
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, FormNone
		case "esc":
			f.Hide()
			return f, nil, FormCancelled
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, FormNone
}

// View renders the form modal
func (f MovieForm) View() string {
	if !f.visible {
		return ""
	}

	title := "Add Movie"
	button := "enter: add"
	if f.editing {
		title = "Edit Movie"
		button = "enter: save changes"
	}

	rows := []string{styles.ModalTitleStyle.Render(title)}
	if f.err != "" {
		rows = append(rows, styles.ErrorStyle.Render(f.err), "")
	}
	for i, in := range f.inputs {
		label := styles.LabelStyle
		if i == f.focus {
			label = styles.FocusedLabelStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), in.View()))
	}
	rows = append(rows, "", styles.DimStyle.Render(button+"  tab: next field  esc: cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
