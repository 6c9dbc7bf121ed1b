package collection

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/validate"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(ids domain.IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithReporter sets the hook that receives corrupt-data and save failures.
func WithReporter(r domain.ErrorReporter) Option {
	return func(s *Store) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithOnChange registers a callback invoked with each new snapshot after a
// successful mutation.
func WithOnChange(fn func(domain.Collection)) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// Store holds the authoritative collection and persists every mutation.
// Nothing is written until Load has completed, so an empty in-memory
// collection never overwrites stored data during startup.
type Store struct {
	persister domain.Persister
	ids       domain.IDGenerator
	reporter  domain.ErrorReporter
	logger    *slog.Logger
	onChange  func(domain.Collection)

	current domain.Collection
	loaded  bool
}

// NewStore creates a store backed by the given persister.
// A nil persister keeps the collection in memory only.
func NewStore(persister domain.Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		ids:       UUIDGenerator,
		reporter:  domain.NoOpReporter{},
		logger:    slog.Default(),
		current:   domain.Collection{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted collection. Missing or corrupt data leaves the
// store empty; corruption is reported and returned, but the store is usable
// either way.
func (s *Store) Load() error {
	defer func() { s.loaded = true }()

	if s.persister == nil {
		return nil
	}

	raw, err := s.persister.LoadRaw()
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrCorruptPersistedData, err)
		s.logger.Error("failed to read stored collection", "error", err)
		s.reporter.Report(err)
		return err
	}

	c, err := Load(raw)
	if err != nil {
		s.logger.Error("stored collection is corrupt, starting empty", "error", err)
		s.reporter.Report(err)
		s.current = c
		return err
	}

	s.current = c
	s.logger.Debug("loaded collection", "count", c.Len(), "stored", raw != nil)
	return nil
}

// Loaded reports whether Load has completed
func (s *Store) Loaded() bool {
	return s.loaded
}

// Snapshot returns the current collection. Callers must not modify it.
func (s *Store) Snapshot() domain.Collection {
	return s.current
}

// Add validates fields and appends a new movie.
func (s *Store) Add(fields domain.MovieFields) (domain.Movie, error) {
	if err := validate.Validate(fields); err != nil {
		return domain.Movie{}, err
	}
	next, movie := Add(s.current, fields, s.ids)
	s.commit(next)
	s.logger.Info("added movie", "id", movie.ID, "title", movie.Title)
	return movie, nil
}

// Update validates fields and replaces the movie with the given ID.
// An unknown ID is a silent no-op.
func (s *Store) Update(id string, fields domain.MovieFields) error {
	if err := validate.Validate(fields); err != nil {
		return err
	}
	if s.current.IndexOf(id) < 0 {
		s.logger.Debug("update of unknown movie ignored", "id", id)
		return nil
	}
	s.commit(Update(s.current, id, fields))
	s.logger.Info("updated movie", "id", id)
	return nil
}

// Remove deletes the movie with the given ID and reports whether it existed.
func (s *Store) Remove(id string) bool {
	if s.current.IndexOf(id) < 0 {
		return false
	}
	s.commit(Remove(s.current, id))
	s.logger.Info("removed movie", "id", id)
	return true
}

// commit swaps in the new snapshot and runs the post-mutation hooks
func (s *Store) commit(next domain.Collection) {
	s.current = next
	s.persist()
	if s.onChange != nil {
		s.onChange(next)
	}
}

func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if !s.loaded {
		s.logger.Warn("skipping save before initial load")
		return
	}
	if err := s.persister.Save(s.current); err != nil {
		if !errors.Is(err, domain.ErrPersistenceWriteFailure) {
			err = fmt.Errorf("%w: %v", domain.ErrPersistenceWriteFailure, err)
		}
		s.logger.Error("failed to save collection", "error", err, "count", s.current.Len())
		s.reporter.Report(err)
		return
	}
	s.logger.Debug("saved collection", "count", s.current.Len())
}

// LogReporter reports failures to a logger.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("recoverable failure", "error", err)
}
