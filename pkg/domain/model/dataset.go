package model

import "github.com/m-mizutani/goerr/v2"

// Dataset describes where an archive comes from and where it goes.
// It is built once by the config layer and never mutated afterwards.
type Dataset struct {
	SourceURL     string `toml:"source_url"`
	LocalDataFile string `toml:"local_data_file"`
	UnzipDir      string `toml:"unzip_dir"`
}

// Validate checks that all required fields are present
func (x *Dataset) Validate() error {
	if x.SourceURL == "" {
		return goerr.New("source_url is required")
	}
	if x.LocalDataFile == "" {
		return goerr.New("local_data_file is required")
	}
	if x.UnzipDir == "" {
		return goerr.New("unzip_dir is required")
	}
	return nil
}
