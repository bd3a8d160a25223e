package fsutil

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
)

// FileSize returns the size of the file at path in a human readable
// form, e.g. "1.2 MB"
func FileSize(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to stat file", goerr.V("path", path))
	}
	return humanize.Bytes(uint64(info.Size())), nil
}
