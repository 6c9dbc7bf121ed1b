package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMissingFields indicates title, year or poster was left empty
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidYear indicates the year is not a four digit number
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidPosterURL indicates the poster is not an absolute URL
	ErrInvalidPosterURL = errors.New("invalid poster url")

	// ErrCorruptPersistedData indicates the stored collection could not be decoded
	ErrCorruptPersistedData = errors.New("corrupt persisted data")

	// ErrPersistenceWriteFailure indicates the collection could not be saved
	ErrPersistenceWriteFailure = errors.New("failed to persist collection")

	// ErrRecordNotFound indicates no movie has the requested ID
	ErrRecordNotFound = errors.New("movie not found")
)

// ValidationError describes why a candidate movie was rejected.
// It unwraps to one of ErrMissingFields, ErrInvalidYear or ErrInvalidPosterURL.
type ValidationError struct {
	Kind  error
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Field
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Message returns the text shown to the user for this failure
func (e *ValidationError) Message() string {
	switch e.Kind {
	case ErrMissingFields:
		return "All fields are required."
	case ErrInvalidYear:
		return "Year must be a 4-digit number."
	case ErrInvalidPosterURL:
		return "Poster URL is not valid."
	default:
		return e.Error()
	}
}
