// Package document defines the driver-agnostic document-store contract used
// by ADRF and other services that need schemaless, collection-oriented
// storage. Concrete adapters live under pkg/database/document/adapters.
package document

import (
	"context"

	"github.com/chris-alexander-pop/system-design-library/pkg/database"
)

// Config configures a document store connection. It mirrors
// database.Config's fields directly (rather than embedding it) so adapters
// can accept either without an import-cycle concern.
type Config struct {
	Driver   database.Driver
	Host     string
	Port     int
	Database string
	User     string
	Password string

	MaxOpenConns int
	MaxIdleConns int

	UseTLS             bool
	InsecureSkipVerify bool
	CAPath             string
	CertPath           string
	KeyPath            string
}

// Document is a single schemaless record. Adapters marshal it with the
// underlying driver's native encoding (e.g. BSON for MongoDB).
type Document map[string]interface{}

// Interface is the operations a document store adapter must support.
type Interface interface {
	// Insert adds a new document to the collection.
	Insert(ctx context.Context, collection string, doc Document) error

	// Find retrieves documents matching the query.
	Find(ctx context.Context, collection string, query map[string]interface{}) ([]Document, error)

	// Update modifies documents matching the filter.
	Update(ctx context.Context, collection string, filter map[string]interface{}, update map[string]interface{}) error

	// Delete removes documents matching the filter.
	Delete(ctx context.Context, collection string, filter map[string]interface{}) error

	// Close releases resources associated with the store.
	Close() error
}
