package types

import "github.com/m-mizutani/goerr/v2"

// Archive validation failure kinds. Each validation check fails with
// exactly one of these tags so that callers can branch on the kind
// with goerr.HasTag.
var (
	// ErrTagNotFound: the archive file does not exist
	ErrTagNotFound = goerr.NewTag("archive_not_found")

	// ErrTagEmptyFile: the archive file exists but is zero bytes
	ErrTagEmptyFile = goerr.NewTag("archive_empty")

	// ErrTagWrongContentType: the file is an HTML document, typically a
	// hosting-service error page downloaded instead of the archive
	ErrTagWrongContentType = goerr.NewTag("archive_wrong_content_type")

	// ErrTagNotAnArchive: the file does not start with the ZIP local
	// file header signature
	ErrTagNotAnArchive = goerr.NewTag("archive_bad_signature")

	// ErrTagCorruptArchive: the ZIP central directory is unreadable
	ErrTagCorruptArchive = goerr.NewTag("archive_corrupt")
)

// IsContentInvalid reports whether err is a content-validity failure,
// i.e. the file is present but unusable. A missing file is not a
// content failure: re-downloading is pointless without a download
// having happened.
func IsContentInvalid(err error) bool {
	return goerr.HasTag(err, ErrTagEmptyFile) ||
		goerr.HasTag(err, ErrTagWrongContentType) ||
		goerr.HasTag(err, ErrTagNotAnArchive) ||
		goerr.HasTag(err, ErrTagCorruptArchive)
}
