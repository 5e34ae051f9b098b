// Package memory is an in-process document.Interface used for tests and
// local development, mirroring the in-memory adapters under
// pkg/messaging/adapters/memory and pkg/events/adapters/memory.
package memory

import (
	"context"
	"sync"

	"github.com/chris-alexander-pop/system-design-library/pkg/database/document"
)

// Store is an in-memory document store: one slice of documents per
// collection, filtered in Go rather than pushed down to a query engine.
type Store struct {
	mu          sync.Mutex
	collections map[string][]document.Document
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]document.Document)}
}

func (s *Store) Insert(ctx context.Context, collection string, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(document.Document, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	s.collections[collection] = append(s.collections[collection], cp)
	return nil
}

// Find returns every document in collection matching every key/value pair
// in query (an empty query matches everything). This is an exact-equality
// scan, not a query-operator engine — sufficient for the collection-scan
// access pattern ADRF retrieval uses.
func (s *Store) Find(ctx context.Context, collection string, query map[string]interface{}) ([]document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []document.Document
	for _, doc := range s.collections[collection] {
		if matches(doc, query) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func matches(doc document.Document, query map[string]interface{}) bool {
	for k, v := range query {
		if doc[k] != v {
			return false
		}
	}
	return true
}

func (s *Store) Update(ctx context.Context, collection string, filter map[string]interface{}, update map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			for k, v := range update {
				doc[k] = v
			}
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, filter map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.collections[collection][:0]
	for _, doc := range s.collections[collection] {
		if !matches(doc, filter) {
			kept = append(kept, doc)
		}
	}
	s.collections[collection] = kept
	return nil
}

func (s *Store) Close() error { return nil }

var _ document.Interface = (*Store)(nil)
