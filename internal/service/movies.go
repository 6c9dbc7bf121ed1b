package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinelist/internal/collection"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/validate"
	"github.com/mmcdole/cinelist/internal/view"
	"golang.org/x/text/language"
)

// MovieService is the application context the UI talks to. It owns the
// store, the edit session, the search/sort selection and the latest
// user-facing error.
type MovieService struct {
	store   *collection.Store
	deriver *view.Deriver
	logger  *slog.Logger

	session   EditSession
	viewState domain.ViewState
	errMsg    string
}

// NewMovieService creates a new MovieService
func NewMovieService(store *collection.Store, deriver *view.Deriver, sort domain.SortMode, logger *slog.Logger) *MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	if deriver == nil {
		deriver = view.NewDeriver(language.Und)
	}
	if sort == "" {
		sort = domain.SortAlphabetical
	}
	return &MovieService{
		store:     store,
		deriver:   deriver,
		logger:    logger,
		viewState: domain.ViewState{Sort: sort},
	}
}

// Submit validates fields and either adds a new movie (Idle) or updates the
// movie being edited (Editing). A validation failure replaces the current
// error message and changes nothing else.
func (s *MovieService) Submit(fields domain.MovieFields) error {
	if err := validate.Validate(fields); err != nil {
		s.errMsg = validate.Message(err)
		s.logger.Debug("rejected movie", "error", err, "state", s.session.State())
		return err
	}

	if target, ok := s.session.Editing(); ok {
		if err := s.store.Update(target.ID, fields); err != nil {
			s.errMsg = validate.Message(err)
			return err
		}
		s.session.Cancel()
	} else {
		if _, err := s.store.Add(fields); err != nil {
			s.errMsg = validate.Message(err)
			return err
		}
	}

	s.errMsg = ""
	return nil
}

// StartEdit begins editing the movie with the given ID. Starting a new edit
// while another is active replaces the target.
func (s *MovieService) StartEdit(id string) error {
	m, ok := s.store.Snapshot().Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	if prev, editing := s.session.Editing(); editing && prev.ID != id {
		s.logger.Debug("replacing edit target", "from", prev.ID, "to", id)
	}
	s.session.StartEdit(m)
	s.errMsg = ""
	return nil
}

// CancelEdit abandons the current edit without touching the collection
func (s *MovieService) CancelEdit() {
	s.session.Cancel()
	s.errMsg = ""
}

// Delete removes a movie. Deleting the movie being edited also ends the edit.
func (s *MovieService) Delete(id string) bool {
	removed := s.store.Remove(id)
	if target, ok := s.session.Editing(); ok && target.ID == id {
		s.session.Cancel()
	}
	if removed {
		s.errMsg = ""
	}
	return removed
}

// SetSearch changes the search term
func (s *MovieService) SetSearch(term string) {
	s.viewState.SearchTerm = term
}

// SetSort changes the sort mode
func (s *MovieService) SetSort(mode domain.SortMode) {
	s.viewState.Sort = mode
}

// CycleSort switches to the other sort mode and returns it
func (s *MovieService) CycleSort() domain.SortMode {
	s.viewState.Sort = s.viewState.Sort.Next()
	return s.viewState.Sort
}

// View returns the filtered and sorted movies for display
func (s *MovieService) View() []domain.Movie {
	return s.deriver.Derive(s.store.Snapshot(), s.viewState.SearchTerm, s.viewState.Sort)
}

// Suggestions returns close title matches when the current search finds nothing
func (s *MovieService) Suggestions(limit int) []domain.Movie {
	if s.viewState.SearchTerm == "" || len(s.View()) > 0 {
		return nil
	}
	return view.Suggest(s.store.Snapshot(), s.viewState.SearchTerm, limit)
}

// Collection returns the current snapshot
func (s *MovieService) Collection() domain.Collection {
	return s.store.Snapshot()
}

// Session returns the edit session state
func (s *MovieService) Session() EditSession {
	return s.session
}

// ViewState returns the current search and sort selection
func (s *MovieService) ViewState() domain.ViewState {
	return s.viewState
}

// Error returns the latest user-facing error, or ""
func (s *MovieService) Error() string {
	return s.errMsg
}

// SetError records a non-validation failure for display (e.g. a failed save)
func (s *MovieService) SetError(err error) {
	switch {
	case err == nil:
		s.errMsg = ""
	case errors.Is(err, domain.ErrPersistenceWriteFailure):
		s.errMsg = "Changes could not be saved; they are kept for this session."
	case errors.Is(err, domain.ErrCorruptPersistedData):
		s.errMsg = "Saved movies could not be read; starting with an empty list."
	default:
		s.errMsg = err.Error()
	}
}
