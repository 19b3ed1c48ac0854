package vm

import (
	"bytes"
	"crypto/sha256"
	"sort"
	"sync"
)

// ---------------------------------------------------------------------------
// ContentStore: content-addressed index for chunks
// ---------------------------------------------------------------------------

// ContentStore indexes chunks by the sha256 of their canonical snapshot
// encoding, so two independently assembled but byte-identical programs
// share one entry.
type ContentStore struct {
	mu     sync.RWMutex
	chunks map[[32]byte]*Chunk
}

// NewContentStore creates an empty content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		chunks: make(map[[32]byte]*Chunk),
	}
}

// IndexChunk adds a chunk to the store and returns its content hash.
func (cs *ContentStore) IndexChunk(c *Chunk) ([32]byte, error) {
	data, err := MarshalChunk(c)
	if err != nil {
		return [32]byte{}, err
	}
	h := sha256.Sum256(data)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.chunks[h] = c
	return h, nil
}

// GetChunk retrieves a chunk by content hash.
func (cs *ContentStore) GetChunk(hash [32]byte) (*Chunk, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c, ok := cs.chunks[hash]
	return c, ok
}

// Count returns the number of indexed chunks.
func (cs *ContentStore) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Hashes returns all indexed hashes in deterministic order.
func (cs *ContentStore) Hashes() [][32]byte {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	hashes := make([][32]byte, 0, len(cs.chunks))
	for h := range cs.chunks {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
	return hashes
}
