package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/datafetch/pkg/domain/model"
)

// Dataset holds dataset configuration sources: an optional TOML file
// plus individual flags. Flags override file values.
type Dataset struct {
	ConfigPath string
	SourceURL  string
	DataFile   string
	UnzipDir   string
}

// Flags returns CLI flags for dataset configuration
func (c *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML dataset config file",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("DATAFETCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "source-url",
			Usage:       "URL of the remote ZIP archive",
			Destination: &c.SourceURL,
			Sources:     cli.EnvVars("DATAFETCH_SOURCE_URL"),
		},
		&cli.StringFlag{
			Name:        "data-file",
			Usage:       "Local path the archive is downloaded to",
			Destination: &c.DataFile,
			Sources:     cli.EnvVars("DATAFETCH_DATA_FILE"),
		},
		&cli.StringFlag{
			Name:        "unzip-dir",
			Usage:       "Directory the archive is extracted into",
			Destination: &c.UnzipDir,
			Sources:     cli.EnvVars("DATAFETCH_UNZIP_DIR"),
		},
	}
}

// Build resolves the configured sources into a Dataset
func (c *Dataset) Build() (*model.Dataset, error) {
	var ds model.Dataset

	if c.ConfigPath != "" {
		raw, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read dataset config file", goerr.V("path", c.ConfigPath))
		}
		if err := toml.Unmarshal(raw, &ds); err != nil {
			return nil, goerr.Wrap(err, "failed to parse dataset config file", goerr.V("path", c.ConfigPath))
		}
	}

	if c.SourceURL != "" {
		ds.SourceURL = c.SourceURL
	}
	if c.DataFile != "" {
		ds.LocalDataFile = c.DataFile
	}
	if c.UnzipDir != "" {
		ds.UnzipDir = c.UnzipDir
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return &ds, nil
}
