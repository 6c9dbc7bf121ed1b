// Package collection owns the canonical movie list.
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/validate"
)

// UUIDGenerator issues random (v4) UUID strings
var UUIDGenerator = domain.IDFunc(uuid.NewString)

// Load decodes a persisted blob. A nil blob yields an empty collection.
// Anything that is not a JSON array of well-formed movies yields an empty
// collection and an error wrapping domain.ErrCorruptPersistedData.
func Load(blob *string) (domain.Collection, error) {
	if blob == nil {
		return domain.Collection{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(*blob)))
	dec.DisallowUnknownFields()

	var movies []domain.Movie
	if err := dec.Decode(&movies); err != nil {
		return domain.Collection{}, fmt.Errorf("%w: %v", domain.ErrCorruptPersistedData, err)
	}
	if dec.More() {
		return domain.Collection{}, fmt.Errorf("%w: trailing data after collection", domain.ErrCorruptPersistedData)
	}
	if movies == nil {
		// "null" is not a sequence
		return domain.Collection{}, fmt.Errorf("%w: expected an array", domain.ErrCorruptPersistedData)
	}

	seen := make(map[string]bool, len(movies))
	for i, m := range movies {
		if m.ID == "" {
			return domain.Collection{}, fmt.Errorf("%w: record %d has no id", domain.ErrCorruptPersistedData, i)
		}
		if seen[m.ID] {
			return domain.Collection{}, fmt.Errorf("%w: duplicate id %q", domain.ErrCorruptPersistedData, m.ID)
		}
		seen[m.ID] = true
		if err := validate.Validate(m.Fields()); err != nil {
			return domain.Collection{}, fmt.Errorf("%w: record %d: %v", domain.ErrCorruptPersistedData, i, err)
		}
	}

	return domain.Collection(movies), nil
}

// Serialize encodes a collection in the persisted layout
func Serialize(c domain.Collection) (string, error) {
	if c == nil {
		c = domain.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Add appends a new movie with a fresh ID. Fields must already be validated.
// The input collection is left untouched.
func Add(c domain.Collection, fields domain.MovieFields, ids domain.IDGenerator) (domain.Collection, domain.Movie) {
	if ids == nil {
		ids = UUIDGenerator
	}
	movie := domain.Movie{ID: ids.NewID()}.WithFields(fields)

	out := make(domain.Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, movie), movie
}

// Update replaces the fields of the movie with the given ID, keeping its
// position. Unknown IDs return c unchanged.
func Update(c domain.Collection, id string, fields domain.MovieFields) domain.Collection {
	i := c.IndexOf(id)
	if i < 0 {
		return c
	}
	out := c.Clone()
	out[i] = out[i].WithFields(fields)
	return out
}

// Remove drops the movie with the given ID. Unknown IDs return c unchanged.
func Remove(c domain.Collection, id string) domain.Collection {
	i := c.IndexOf(id)
	if i < 0 {
		return c
	}
	out := make(domain.Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}
