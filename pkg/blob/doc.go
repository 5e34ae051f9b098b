/*
Package blob provides a unified interface for object/blob storage.

Backends:
  - Memory: In-memory Store for testing
  - GCS: Google Cloud Storage client with its own Put/Get/List/Delete
    methods; it does not implement Store

Usage:

	import "github.com/chris-alexander-pop/system-design-library/pkg/blob/adapters/memory"

	store := memory.New(cfg)
	err := store.Upload(ctx, "data.txt", reader)
*/
package blob
