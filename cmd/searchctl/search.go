package main

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/service"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/config/env"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		flags   requestFlags
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a search against the configured backend",
		Long:  "search reads the storage settings from the environment (STORAGE_TYPE, PG_CONNECTION_STRING, ES_*) and prints the result page as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.LoadDotEnv(os.Getenv("ENV"), envFile); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "continuing without .env:", err)
			}

			cfg, err := factory.LoadEnv()
			if err != nil {
				return err
			}
			categories, err := catalog.LoadFile(flags.categories)
			if err != nil {
				return err
			}

			backend, err := factory.NewBackend(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			svc := service.NewSearchService(backend.Searcher, categories, backend.Users)
			res, err := svc.Search(cmd.Context(), flags.raw())
			if err != nil {
				return err
			}

			out, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&envFile, "env-file", "cmd/searchctl/.env", "dotenv file with storage settings")
	return cmd
}
