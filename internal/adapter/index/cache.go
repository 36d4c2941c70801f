package index

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketEmbeddings = []byte("embeddings")

// BoltCache persists document embeddings across runs, keyed by a
// document fingerprint plus the embedding model, so re-ingesting an
// unchanged document skips the remote embedding calls.
type BoltCache struct {
	db    *bbolt.DB
	model string
}

type cachedVectors struct {
	Model   string      `json:"model"`
	Vectors [][]float32 `json:"vectors"`
}

// NewBoltCache opens (or creates) the cache database at path.
func NewBoltCache(path, model string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embeddings bucket: %w", err)
	}

	return &BoltCache{db: db, model: model}, nil
}

// Get returns the cached vectors for a document fingerprint. A hit
// recorded under a different embedding model is treated as a miss.
func (c *BoltCache) Get(fingerprint string) ([][]float32, bool) {
	var cached cachedVectors
	found := false

	c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return nil
		}
		data := b.Get([]byte(fingerprint))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &cached); err != nil {
			return nil // skip corrupted entries
		}
		found = cached.Model == c.model
		return nil
	})

	if !found {
		return nil, false
	}
	return cached.Vectors, true
}

// Put stores the full vector set for a document fingerprint.
func (c *BoltCache) Put(fingerprint string, vectors [][]float32) error {
	data, err := json.Marshal(cachedVectors{Model: c.model, Vectors: vectors})
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return fmt.Errorf("embeddings bucket not found")
		}
		return b.Put([]byte(fingerprint), data)
	})
}

// Close closes the underlying database.
func (c *BoltCache) Close() error {
	return c.db.Close()
}

// NopCache satisfies the cache interface when caching is disabled.
type NopCache struct{}

func (NopCache) Get(string) ([][]float32, bool) { return nil, false }
func (NopCache) Put(string, [][]float32) error  { return nil }
func (NopCache) Close() error                   { return nil }
