package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/datafetch/pkg/cli/config"
	"github.com/m-mizutani/datafetch/pkg/infra/fetch"
	"github.com/m-mizutani/datafetch/pkg/usecase"
)

func cmdFetch() *cli.Command {
	var datasetCfg config.Dataset

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Download the remote archive and extract it",
		Flags:   datasetCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
			ctx = ctxlog.With(ctx, logger)

			dataset, err := datasetCfg.Build()
			if err != nil {
				return err
			}

			logger.Info("Starting archive acquisition",
				"source_url", dataset.SourceURL,
				"data_file", dataset.LocalDataFile,
				"unzip_dir", dataset.UnzipDir,
			)

			uc := usecase.NewIngest(dataset, fetch.New())

			if err := uc.Acquire(ctx); err != nil {
				return goerr.Wrap(err, "archive acquisition failed")
			}

			result, err := uc.Extract(ctx)
			if err != nil {
				return goerr.Wrap(err, "archive extraction failed")
			}

			logger.Info("Archive acquisition complete",
				"dir", result.Dir,
				"entries", len(result.Files),
			)

			return nil
		},
	}
}
