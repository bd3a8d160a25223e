package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/datafetch/pkg/domain/types"
)

const (
	// headProbeSize is how many leading bytes are inspected for
	// signature checks
	headProbeSize = 100

	// hexDumpSize is how many leading bytes appear in the
	// NotAnArchive error message
	hexDumpSize = 20

	// htmlExcerptSize is how many characters of an HTML error page are
	// logged for diagnostics
	htmlExcerptSize = 300
)

// htmlSignatures mark documents a hosting service returns instead of
// the archive itself, typically an error or login page.
var htmlSignatures = [][]byte{
	[]byte("<!DOCTYPE"),
	[]byte("<html"),
}

var zipSignature = []byte("PK")

// ValidateArchive checks that path references a well-formed ZIP
// archive. The checks run in a fixed order and each failure carries a
// distinct error tag: ErrTagNotFound, ErrTagEmptyFile,
// ErrTagWrongContentType, ErrTagNotAnArchive, ErrTagCorruptArchive.
func (uc *ingestUseCase) ValidateArchive(ctx context.Context, path string) error {
	logger := ctxlog.From(ctx)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return goerr.New("archive file not found",
			goerr.V("path", path),
			goerr.T(types.ErrTagNotFound),
		)
	} else if err != nil {
		return goerr.Wrap(err, "failed to stat archive file", goerr.V("path", path))
	}

	if info.Size() == 0 {
		return goerr.New("archive file is empty",
			goerr.V("path", path),
			goerr.T(types.ErrTagEmptyFile),
		)
	}

	head, err := readHead(path, headProbeSize)
	if err != nil {
		return goerr.Wrap(err, "failed to read archive header", goerr.V("path", path))
	}

	for _, sig := range htmlSignatures {
		if bytes.HasPrefix(head, sig) {
			logger.Error("Downloaded an HTML page instead of a ZIP archive",
				"path", path,
				"content", htmlExcerpt(path),
			)
			return goerr.New("got HTML page instead of ZIP archive, check the URL",
				goerr.V("path", path),
				goerr.T(types.ErrTagWrongContentType),
			)
		}
	}

	if !bytes.HasPrefix(head, zipSignature) {
		return goerr.New("file is not a ZIP archive",
			goerr.V("path", path),
			goerr.V("first_bytes", hex.EncodeToString(head[:min(len(head), hexDumpSize)])),
			goerr.T(types.ErrTagNotAnArchive),
		)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return goerr.Wrap(err, "corrupted ZIP archive",
			goerr.V("path", path),
			goerr.T(types.ErrTagCorruptArchive),
		)
	}
	defer zr.Close()

	logger.Info("ZIP archive is valid", "path", path, "entries", len(zr.File))

	return nil
}

// readHead returns up to n leading bytes of the file at path
func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}

// htmlExcerpt returns the first characters of the file for diagnostic
// logging. Best effort: read or decode problems yield an empty string
// rather than an error.
func htmlExcerpt(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, htmlExcerptSize)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	return strings.ToValidUTF8(string(buf[:read]), "")
}
