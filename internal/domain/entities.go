package domain

// Movie is a single entry in the user's list
type Movie struct {
	ID     string `json:"id"`     // Generated on creation, immutable
	Title  string `json:"title"`  // Non-empty display title
	Year   string `json:"year"`   // Exactly four decimal digits
	Poster string `json:"poster"` // Absolute URL of the poster image
}

// MovieFields is the user-editable part of a Movie
type MovieFields struct {
	Title  string `validate:"required"`
	Year   string `validate:"required,year4"`
	Poster string `validate:"required,absurl"`
}

// Fields returns the editable fields of the movie
func (m Movie) Fields() MovieFields {
	return MovieFields{Title: m.Title, Year: m.Year, Poster: m.Poster}
}

// WithFields returns a copy of the movie carrying new field values.
// The ID is preserved.
func (m Movie) WithFields(f MovieFields) Movie {
	return Movie{ID: m.ID, Title: f.Title, Year: f.Year, Poster: f.Poster}
}

// Collection is the ordered list of movies in insertion order.
// Collections are treated as immutable snapshots; mutating operations
// return a new slice.
type Collection []Movie

// Len returns the number of movies
func (c Collection) Len() int {
	return len(c)
}

// IndexOf returns the position of the movie with the given ID, or -1
func (c Collection) IndexOf(id string) int {
	for i, m := range c {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the movie with the given ID
func (c Collection) Find(id string) (Movie, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return Movie{}, false
}

// Equal reports whether both collections hold the same movies in the same order
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with c
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
