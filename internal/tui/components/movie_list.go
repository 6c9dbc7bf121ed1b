package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/tui/styles"
	"github.com/mmcdole/cinelist/internal/view"
)

const emptyListText = "No movies in your list yet. Press a to add one!"

// MovieList is a scrollable list of the derived view
type MovieList struct {
	items  []domain.Movie
	term   string
	cursor int
	offset int

	width  int
	height int
}

// NewMovieList creates an empty list
func NewMovieList() MovieList {
	return MovieList{}
}

// SetSize sets the visible dimensions
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clamp()
}

// SetItems replaces the rows. The cursor stays on the same movie when it is
// still visible.
func (l *MovieList) SetItems(items []domain.Movie, term string) {
	selectedID := ""
	if m, ok := l.Selected(); ok {
		selectedID = m.ID
	}

	l.items = items
	l.term = term

	if selectedID != "" {
		for i, m := range items {
			if m.ID == selectedID {
				l.cursor = i
				break
			}
		}
	}
	l.clamp()
}

// Len returns the number of rows
func (l MovieList) Len() int {
	return len(l.items)
}

// Selected returns the movie under the cursor
func (l MovieList) Selected() (domain.Movie, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.Movie{}, false
	}
	return l.items[l.cursor], true
}

// Cursor returns the cursor row
func (l MovieList) Cursor() int {
	return l.cursor
}

// MoveUp moves the cursor up by n rows
func (l *MovieList) MoveUp(n int) {
	l.cursor -= n
	l.clamp()
}

// MoveDown moves the cursor down by n rows
func (l *MovieList) MoveDown(n int) {
	l.cursor += n
	l.clamp()
}

// Top moves the cursor to the first row
func (l *MovieList) Top() {
	l.cursor = 0
	l.clamp()
}

// Bottom moves the cursor to the last row
func (l *MovieList) Bottom() {
	l.cursor = len(l.items) - 1
	l.clamp()
}

func (l *MovieList) visibleRows() int {
	if l.height <= 0 {
		return len(l.items)
	}
	return l.height
}

// clamp keeps cursor and offset in range
func (l *MovieList) clamp() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}

	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if rows > 0 && l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible rows
func (l MovieList) View() string {
	if len(l.items) == 0 {
		return styles.DimStyle.Render(emptyListText)
	}

	rows := l.visibleRows()
	end := min(l.offset+rows, len(l.items))

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.items[i], i == l.cursor))
	}
	return strings.Join(lines, "\n")
}

func (l MovieList) renderRow(m domain.Movie, selected bool) string {
	const yearWidth = 6
	titleWidth := l.width - yearWidth - 2
	if titleWidth < 8 {
		titleWidth = 40
	}

	title := styles.Truncate(m.Title, titleWidth)
	titleCell := highlightMatches(title, view.MatchedIndexes(title, l.term), selected)
	padding := strings.Repeat(" ", max(titleWidth-lipgloss.Width(title), 0))

	base := styles.NormalItemStyle
	yearStyle := styles.YearStyle
	if selected {
		base = styles.SelectedItemStyle
		yearStyle = styles.SelectedItemStyle
	}

	return base.Render(" ") + titleCell + base.Render(padding) + yearStyle.Render(" "+m.Year+" ")
}

// highlightMatches renders text with the matched runes emphasized
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := styles.NormalItemStyle
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var out strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		isMatch := matchSet[i]
		j := i
		for j < len(runes) && matchSet[j] == isMatch {
			j++
		}
		if isMatch {
			out.WriteString(match.Render(string(runes[i:j])))
		} else {
			out.WriteString(normal.Render(string(runes[i:j])))
		}
		i = j
	}
	return out.String()
}
