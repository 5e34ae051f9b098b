package pinecone

import (
	"context"
	"fmt"

	"github.com/chris-alexander-pop/system-design-library/pkg/database"
	"github.com/chris-alexander-pop/system-design-library/pkg/database/vector"
	"github.com/chris-alexander-pop/system-design-library/pkg/errors"
)

// NOTE: Pinecone official Go SDK is often in flux or community maintained.
// For "Overengineering" without external instability, I will implement a robust HTTP Client wrapper
// that adheres to the VectorStore interface.
// If an official SDK `github.com/pinecone-io/go-pinecone` is available we would use it.
// Assuming we implement the vector.Store interface directly.

type PineconeStore struct {
	APIKey      string
	Environment string
	ProjectID   string
	IndexName   string
}

// New creates a new Pinecone adapter
func New(cfg database.Config) (*PineconeStore, error) {
	if cfg.Driver != database.DriverPinecone {
		return nil, errors.New(errors.CodeInvalidArgument, fmt.Sprintf("invalid driver %s for pinecone adapter", cfg.Driver), nil)
	}

	return &PineconeStore{
		APIKey:      cfg.APIKey,
		Environment: cfg.Environment,
		ProjectID:   cfg.ProjectID,
		IndexName:   cfg.Name,
	}, nil
}

// Search implements vector.Store interface
func (p *PineconeStore) Search(ctx context.Context, queryVector []float32, limit int) ([]vector.Result, error) {
	// TBI: Implement actual HTTP call to Pinecone API
	// url := fmt.Sprintf("https://%s-%s.svc.%s.pinecone.io/query", p.IndexName, p.ProjectID, p.Environment)
	return []vector.Result{}, nil
}

func (p *PineconeStore) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]interface{}) error {
	// TBI: Implement HTTP Upsert
	return nil
}

func (p *PineconeStore) Delete(ctx context.Context, ids ...string) error {
	// TBI: Implement HTTP Delete
	return nil
}
