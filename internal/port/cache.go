package port

// EmbeddingCache persists embeddings across runs so re-ingesting an
// unchanged document skips the remote embedding calls.
type EmbeddingCache interface {
	// Get returns the cached vectors for a document fingerprint, or
	// ok=false when absent. A hit always covers the whole document.
	Get(fingerprint string) (vectors [][]float32, ok bool)

	// Put stores the full vector set for a document fingerprint.
	Put(fingerprint string, vectors [][]float32) error

	Close() error
}
