package store

import (
	"fmt"

	"github.com/mmcdole/cinelist/internal/collection"
	"github.com/mmcdole/cinelist/internal/domain"
)

// CollectionKey is the single key the collection blob lives under
const CollectionKey = "movies"

// Adapter implements domain.Persister on top of a BlobStore.
type Adapter struct {
	blobs domain.BlobStore
}

// NewAdapter wraps a blob store
func NewAdapter(blobs domain.BlobStore) *Adapter {
	return &Adapter{blobs: blobs}
}

// LoadRaw returns the stored blob, or nil if none was ever saved
func (a *Adapter) LoadRaw() (*string, error) {
	data, ok, err := a.blobs.Get(CollectionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	blob := string(data)
	return &blob, nil
}

// Save writes a full snapshot of the collection
func (a *Adapter) Save(c domain.Collection) error {
	blob, err := collection.Serialize(c)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceWriteFailure, err)
	}
	if err := a.blobs.Put(CollectionKey, []byte(blob)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceWriteFailure, err)
	}
	return nil
}
