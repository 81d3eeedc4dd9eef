package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rohits-web03/llamastore/internal/app"
	"github.com/rohits-web03/llamastore/internal/config"
)

func migrateCommand(cfg *config.Config) *cobra.Command {
	var picturesDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables and seed the demo llamas",
		Long: `Create the tables, generate the token signing key on first run and seed the
demo llamas into an empty catalog. With --pictures, <dir>/<llama_id>.png is
attached to each demo llama.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), cfg, picturesDir)
		},
	}
	cmd.Flags().StringVar(&picturesDir, "pictures", "", "Directory with <llama_id>.png pictures for the demo llamas")
	return cmd
}

func migrate(ctx context.Context, cfg *config.Config, picturesDir string) error {
	log, flush, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer flush()

	a, err := app.New(ctx, *cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	llamas, pictures, err := a.Seed(ctx, picturesDir)
	if err != nil {
		return err
	}
	log.Infow("migration complete", "llamas_seeded", llamas, "pictures_seeded", pictures)
	return nil
}
