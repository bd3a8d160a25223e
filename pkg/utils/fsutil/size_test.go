package fsutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/datafetch/pkg/utils/fsutil"
)

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	gt.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0}, 1500), 0644))

	size, err := fsutil.FileSize(path)
	gt.NoError(t, err)
	gt.Value(t, size).Equal("1.5 kB")
}

func TestFileSize_Missing(t *testing.T) {
	_, err := fsutil.FileSize(filepath.Join(t.TempDir(), "missing.bin"))
	gt.Error(t, err)
}
