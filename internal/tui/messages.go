package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinelist/internal/domain"
)

// Message types for the TUI

// ReportMsg carries a recoverable failure from the store (failed save,
// corrupt data on load)
type ReportMsg struct {
	Err error
}

// posterOpenedMsg reports the outcome of opening a poster
type posterOpenedMsg struct {
	title string
	err   error
}

// clearStatusMsg hides the transient status line
type clearStatusMsg struct {
	seq int
}

// WaitForReport blocks until the reporter has something to show
func WaitForReport(ch <-chan error) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return ReportMsg{Err: err}
	}
}

// OpenPoster opens the movie's poster URL with opener
func OpenPoster(opener PosterOpener, m domain.Movie) tea.Cmd {
	return func() tea.Msg {
		return posterOpenedMsg{title: m.Title, err: opener.Open(m.Poster)}
	}
}
