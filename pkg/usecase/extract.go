package usecase

import (
	"archive/zip"
	"compress/flate"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/datafetch/pkg/domain/model"
	"github.com/m-mizutani/datafetch/pkg/domain/types"
)

// sampleEntryCount is how many extracted entry names are logged
const sampleEntryCount = 5

// Extract unpacks the local archive into the dataset's unzip
// directory, preserving the archive's internal relative paths. The
// archive is re-validated first, even if the caller already did.
// Unlike Acquire, a failed extraction leaves already-extracted files
// in place.
func (uc *ingestUseCase) Extract(ctx context.Context) (*model.ExtractResult, error) {
	logger := ctxlog.From(ctx)
	src := uc.dataset.LocalDataFile
	dir := uc.dataset.UnzipDir

	if err := uc.ValidateArchive(ctx, src); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create extraction directory", goerr.V("dir", dir))
	}

	logger.Info("Extracting ZIP archive", "path", src, "dir", dir)

	result, err := uc.extractZip(src, dir)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagCorruptArchive) {
			logger.Error("ZIP structure error during extraction",
				"path", src,
				"error", err,
				"hints", []string{
					"downloaded file is corrupted",
					"wrong URL (downloaded an HTML page instead of a ZIP)",
					"file is not actually a ZIP archive",
				},
			)
		} else {
			logger.Error("Extraction failed", "path", src, "error", err)
		}
		return nil, err
	}

	logEntrySamples(ctx, result.Files)
	logger.Info("Extraction complete",
		"dir", dir,
		"entries", len(result.Files),
		"total_size", humanize.Bytes(uint64(result.Size)),
	)

	return result, nil
}

// extractZip extracts every entry of the archive at src into dir
func (uc *ingestUseCase) extractZip(src, dir string) (*model.ExtractResult, error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open ZIP archive",
			goerr.V("path", src),
			goerr.T(types.ErrTagCorruptArchive),
		)
	}
	defer zr.Close()

	var files []string
	var totalSize int64

	for _, entry := range zr.File {
		if err := extractEntry(entry, dir); err != nil {
			return nil, err
		}
		files = append(files, entry.Name)
		totalSize += int64(entry.UncompressedSize64)
	}

	return &model.ExtractResult{
		Dir:   dir,
		Files: files,
		Size:  totalSize,
	}, nil
}

// extractEntry writes a single archive entry under destDir. Entry
// names that would escape destDir are rejected.
func extractEntry(entry *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, entry.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("entry path escapes extraction directory",
			goerr.V("entry", entry.Name),
			goerr.V("dest", destPath),
		)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(destPath, entry.FileInfo().Mode())
	}

	rc, err := entry.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open entry in ZIP", entryErrOptions(err, goerr.V("entry", entry.Name))...)
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories", goerr.V("dir", filepath.Dir(destPath)))
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.FileInfo().Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy entry content", entryErrOptions(err, goerr.V("path", destPath))...)
	}

	return nil
}

// entryErrOptions tags err as a corrupt archive when it stems from the
// ZIP structure itself (broken compressed data, checksum mismatch)
// rather than the local filesystem. A valid central directory does not
// guarantee readable entry bodies, and such failures deserve the same
// operator hints as an unreadable directory.
func entryErrOptions(err error, opts ...goerr.Option) []goerr.Option {
	if isZipStructureError(err) {
		opts = append(opts, goerr.T(types.ErrTagCorruptArchive))
	}
	return opts
}

func isZipStructureError(err error) bool {
	var corrupt flate.CorruptInputError
	if errors.As(err, &corrupt) {
		return true
	}
	return errors.Is(err, zip.ErrFormat) ||
		errors.Is(err, zip.ErrChecksum) ||
		errors.Is(err, zip.ErrAlgorithm)
}

// logEntrySamples logs up to sampleEntryCount extracted entry names,
// 1-indexed, and a count of the rest
func logEntrySamples(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}

	logger := ctxlog.From(ctx)
	logger.Info("Sample extracted entries")

	samples := files
	if len(samples) > sampleEntryCount {
		samples = samples[:sampleEntryCount]
	}
	for i, name := range samples {
		logger.Info(fmt.Sprintf("  %d. %s", i+1, name))
	}
	if rest := len(files) - sampleEntryCount; rest > 0 {
		logger.Info(fmt.Sprintf("  ... and %d more files", rest))
	}
}
