package digest

import (
	"fmt"
	"strings"
	"sync"
)

// Store is the process-wide map from source identifier to its digest.
// A later Put for the same identifier replaces the earlier digest whole;
// readers never observe a partially written entry. Entries live until
// process teardown, there is no eviction.
type Store struct {
	mu      sync.RWMutex
	digests map[string]Digest
	order   []string // insertion order of keys
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{digests: make(map[string]Digest)}
}

// Put inserts or replaces the digest for d.Source.
func (s *Store) Put(d Digest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.digests[d.Source]; !ok {
		s.order = append(s.order, d.Source)
	}
	s.digests[d.Source] = d
}

// Get returns the digest stored under the exact identifier.
func (s *Store) Get(source string) (Digest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.digests[source]
	if !ok {
		return Digest{}, fmt.Errorf("%w: %s (known: %s)", ErrNotIngested, source, s.knownLocked())
	}
	return d, nil
}

// Resolve maps a query identifier to a stored key. An exact key wins;
// otherwise the first stored key (in insertion order) that ends with the
// query matches. This lets callers address a repository by its short name
// after it was ingested under a full URL.
func (s *Store) Resolve(query string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.digests[query]; ok {
		return query, nil
	}
	if query != "" {
		for _, key := range s.order {
			if strings.HasSuffix(key, query) {
				return key, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s (known: %s)", ErrNotIngested, query, s.knownLocked())
}

// List returns all stored identifiers in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of stored digests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) knownLocked() string {
	if len(s.order) == 0 {
		return "none"
	}
	return strings.Join(s.order, ", ")
}
