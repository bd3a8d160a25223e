package model

import "net/http"

// FetchResult represents the outcome of downloading a resource to disk
type FetchResult struct {
	Path    string      // Destination file path
	Size    int64       // Bytes written
	Headers http.Header // Response headers from the transfer
}

// ExtractResult represents the outcome of a ZIP extraction
type ExtractResult struct {
	Dir   string   // Directory the entries were extracted into
	Files []string // Entry names in archive order
	Size  int64    // Total uncompressed size in bytes
}
