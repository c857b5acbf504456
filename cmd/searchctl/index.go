package main

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/torrent-hunter/pkg/config/env"
	"github.com/spf13/cobra"
)

func newInitIndexCmd() *cobra.Command {
	var (
		envFile  string
		loadFile string
	)

	cmd := &cobra.Command{
		Use:   "init-index",
		Short: "Create the Elasticsearch torrent index",
		Long: "init-index creates ES_INDEX_NAME with the torrent mapping when it is missing. " +
			"--load indexes a JSON array of torrents, which is meant for local clusters and tests.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.LoadDotEnv(os.Getenv("ENV"), envFile); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "continuing without .env:", err)
			}

			cfg, err := factory.LoadEnv()
			if err != nil {
				return err
			}
			if cfg.Es == nil {
				return fmt.Errorf("ES_ADDRESSES is not set")
			}

			client, err := es.NewClient(*cfg.Es)
			if err != nil {
				return err
			}
			indexer := es.NewIndexer(client, cfg.Es.IndexName, cfg.EsSearch.Analyzer)

			created, err := indexer.EnsureIndex(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "index %s created=%t\n", cfg.Es.IndexName, created)

			if loadFile == "" {
				return nil
			}
			torrents, err := in_mem.ReadTorrents(loadFile)
			if err != nil {
				return err
			}
			stats, err := indexer.IndexTorrents(cmd.Context(), torrents)
			fmt.Fprintf(cmd.OutOrStdout(), "indexed=%d failed=%d\n", stats.Indexed, stats.Failed)
			return err
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "cmd/searchctl/.env", "dotenv file with storage settings")
	cmd.Flags().StringVar(&loadFile, "load", "", "JSON file of torrents to index after creating the index")
	return cmd
}
