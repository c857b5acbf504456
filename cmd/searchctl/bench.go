package main

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/bench"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/service"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/config/env"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		flags   requestFlags
		envFile string
		cfg     bench.Config
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure search latency on every configured backend",
		Long:  "bench runs the same request against PostgreSQL and Elasticsearch when both have connection settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.LoadDotEnv(os.Getenv("ENV"), envFile); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "continuing without .env:", err)
			}

			storageCfg, err := factory.LoadEnv()
			if err != nil {
				return err
			}
			categories, err := catalog.LoadFile(flags.categories)
			if err != nil {
				return err
			}

			var (
				searchers []storage.Searcher
				users     catalog.UserDirectory
			)
			for _, t := range storageCfg.Available() {
				backend, err := factory.NewBackend(cmd.Context(), storageCfg.WithType(t))
				if err != nil {
					return err
				}
				defer backend.Close()
				searchers = append(searchers, backend.Searcher)
				if users == nil {
					users = backend.Users
				}
			}
			if len(searchers) == 0 {
				return fmt.Errorf("no backend configured")
			}

			c, err := service.NewSearchService(searchers[0], categories, users).Explain(cmd.Context(), flags.raw())
			if err != nil {
				return err
			}

			results, err := bench.NewRunner(cfg, searchers...).Run(cmd.Context(), []bench.Case{{Name: c.Key(), Criteria: c}})
			if err != nil {
				return err
			}
			return bench.WriteTable(cmd.OutOrStdout(), results)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&envFile, "env-file", "cmd/searchctl/.env", "dotenv file with storage settings")
	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "n", 20, "measured runs per backend")
	cmd.Flags().IntVar(&cfg.Warmup, "warmup", 2, "unmeasured runs per backend")
	return cmd
}
