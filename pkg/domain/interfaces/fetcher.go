package interfaces

import (
	"context"

	"github.com/m-mizutani/datafetch/pkg/domain/model"
)

// Fetcher defines the network transfer used to bring a remote archive
// onto local disk
type Fetcher interface {
	// Fetch downloads url and writes the full response body to destPath.
	// It blocks until the transfer completes or ctx is cancelled.
	Fetch(ctx context.Context, url, destPath string) (*model.FetchResult, error)
}
