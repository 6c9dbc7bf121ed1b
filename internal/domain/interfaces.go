package domain

// BlobStore is the storage medium: opaque values under string keys.
// Get reports false when the key is absent. Put overwrites unconditionally.
type BlobStore interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Close() error
}

// Persister reads and writes the whole collection as one blob.
type Persister interface {
	// LoadRaw returns nil when nothing has been stored yet
	LoadRaw() (*string, error)

	// Save overwrites the stored blob with a full snapshot
	Save(c Collection) error
}

// IDGenerator produces identifiers unique within the process lifetime.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a plain function to IDGenerator
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// ErrorReporter receives recoverable failures (corrupt data, failed saves).
type ErrorReporter interface {
	Report(err error)
}

// NoOpReporter discards reports (for testing/batch operations).
type NoOpReporter struct{}

func (NoOpReporter) Report(error) {}
