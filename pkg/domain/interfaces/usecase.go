package interfaces

import (
	"context"

	"github.com/m-mizutani/datafetch/pkg/domain/model"
)

// IngestUseCase defines the archive acquisition pipeline step
type IngestUseCase interface {
	// Acquire ensures a validated local copy of the remote archive exists
	Acquire(ctx context.Context) error

	// Extract unpacks the local archive into the dataset's unzip directory
	Extract(ctx context.Context) (*model.ExtractResult, error)

	// ValidateArchive checks that path is a well-formed ZIP archive
	ValidateArchive(ctx context.Context, path string) error
}
