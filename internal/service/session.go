package service

import "github.com/mmcdole/cinelist/internal/domain"

// EditState is the state of the edit session
type EditState int

const (
	EditIdle EditState = iota
	EditEditing
)

// String returns a short name for logging
func (s EditState) String() string {
	if s == EditEditing {
		return "editing"
	}
	return "idle"
}

// EditSession tracks the movie being edited, if any. It is never persisted.
// The zero value is Idle.
type EditSession struct {
	state  EditState
	target domain.Movie
}

// StartEdit selects m for editing, replacing any previous target.
func (s *EditSession) StartEdit(m domain.Movie) {
	s.state = EditEditing
	s.target = m
}

// Cancel returns to Idle
func (s *EditSession) Cancel() {
	s.state = EditIdle
	s.target = domain.Movie{}
}

// Editing returns the target when a movie is being edited
func (s EditSession) Editing() (domain.Movie, bool) {
	return s.target, s.state == EditEditing
}

// State returns the current state
func (s EditSession) State() EditState {
	return s.state
}
