package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/datafetch/pkg/domain/interfaces"
	"github.com/m-mizutani/datafetch/pkg/domain/model"
	"github.com/m-mizutani/datafetch/pkg/domain/types"
	"github.com/m-mizutani/datafetch/pkg/utils/fsutil"
)

type ingestUseCase struct {
	dataset *model.Dataset
	fetcher interfaces.Fetcher
}

// NewIngest creates a new instance of IngestUseCase
func NewIngest(dataset *model.Dataset, fetcher interfaces.Fetcher) interfaces.IngestUseCase {
	return &ingestUseCase{
		dataset: dataset,
		fetcher: fetcher,
	}
}

// maxAcquireAttempts bounds the delete-and-redownload cycle for an
// invalid pre-existing archive. One redo, never more.
const maxAcquireAttempts = 2

// Acquire ensures a validated local copy of the remote archive exists.
// A pre-existing file that fails content validation is removed and
// downloaded again exactly once. A fresh download that fails validation
// is not retried. On any failure the broken destination file is removed
// before the original error is returned.
func (uc *ingestUseCase) Acquire(ctx context.Context) (err error) {
	logger := ctxlog.From(ctx)
	dst := uc.dataset.LocalDataFile

	defer func() {
		if err == nil {
			return
		}
		if _, statErr := os.Stat(dst); statErr == nil {
			if rmErr := os.Remove(dst); rmErr != nil {
				logger.Error("Failed to remove broken download", "path", dst, "error", rmErr)
			} else {
				logger.Error("Removed failed download", "path", dst)
			}
		}
		logger.Error("Archive acquisition failed", "error", err)
	}()

	for attempt := 1; attempt <= maxAcquireAttempts; attempt++ {
		if _, statErr := os.Stat(dst); os.IsNotExist(statErr) {
			if err := uc.download(ctx); err != nil {
				return err
			}
			// A fresh download that fails validation is not retried
			return uc.ValidateArchive(ctx, dst)
		}

		size, sizeErr := fsutil.FileSize(dst)
		if sizeErr != nil {
			size = "unknown"
		}
		logger.Info("Archive already exists", "path", dst, "size", size)

		vErr := uc.ValidateArchive(ctx, dst)
		if vErr == nil {
			return nil
		}
		if !types.IsContentInvalid(vErr) || attempt == maxAcquireAttempts {
			return vErr
		}

		logger.Warn("Existing archive is invalid, removing and re-downloading",
			"path", dst,
			"error", vErr,
		)
		if rmErr := os.Remove(dst); rmErr != nil {
			return goerr.Wrap(rmErr, "failed to remove invalid archive", goerr.V("path", dst))
		}
	}

	return nil
}

// download transfers the remote archive to the destination path
func (uc *ingestUseCase) download(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	dst := uc.dataset.LocalDataFile

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dir))
		}
	}

	url := NormalizeURL(ctx, uc.dataset.SourceURL)
	logger.Info("Downloading archive", "url", url, "path", dst)

	result, err := uc.fetcher.Fetch(ctx, url, dst)
	if err != nil {
		return goerr.Wrap(err, "failed to download archive", goerr.V("url", url), goerr.V("path", dst))
	}

	logger.Info("Download complete",
		"path", result.Path,
		"size", humanize.Bytes(uint64(result.Size)),
		"headers", result.Headers,
	)

	return nil
}

// NormalizeURL rewrites a GitHub blob URL (the browser view-link form)
// into its raw content form so that the transfer fetches the file body
// instead of the HTML page around it. Any other URL is returned as is.
func NormalizeURL(ctx context.Context, url string) string {
	if strings.Contains(url, "github.com") && strings.Contains(url, "/blob/") {
		fixed := strings.Replace(url, "github.com", "raw.githubusercontent.com", 1)
		fixed = strings.Replace(fixed, "/blob/", "/", 1)
		ctxlog.From(ctx).Info("Rewrote GitHub blob URL to raw content URL", "from", url, "to", fixed)
		return fixed
	}
	return url
}
