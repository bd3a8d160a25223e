package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/datafetch/pkg/domain/model"
	"github.com/m-mizutani/datafetch/pkg/usecase"
)

func cmdCheck() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate an existing archive file without downloading",
		ArgsUsage: "<archive file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return goerr.New("archive file path is required")
			}

			uc := usecase.NewIngest(&model.Dataset{LocalDataFile: path}, nil)
			if err := uc.ValidateArchive(ctx, path); err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Archive is valid", "path", path)
			return nil
		},
	}
}
