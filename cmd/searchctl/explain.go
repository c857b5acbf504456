package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/filter"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/service"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/torrent-hunter/internal/storage/pg"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	var (
		flags     requestFlags
		analyzer  string
		highlight bool
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the SQL and Elasticsearch query a search compiles to",
		Long:  "explain validates the request and compiles it for both backends without connecting to either.",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := catalog.LoadFile(flags.categories)
			if err != nil {
				return err
			}

			// the profile is assumed to exist, nothing is queried
			users := catalog.NewStaticUsers()
			if flags.profile > 0 {
				users.Add(flags.profile)
			}

			// explain never executes, so no searcher is needed
			svc := service.NewSearchService(nil, categories, users)
			c, err := svc.Explain(cmd.Context(), flags.raw())
			if err != nil {
				return err
			}

			return explain(cmd.OutOrStdout(), c, es.PlannerOptions{Analyzer: analyzer, Highlight: highlight})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&analyzer, "analyzer", es.DefaultAnalyzer, "search analyzer for the index backend")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "request display name highlights")
	return cmd
}

func explain(w io.Writer, c *search.Criteria, esOpts es.PlannerOptions) error {
	pgPlan, err := pg.NewPlanner(pg.PlannerOptions{LookaheadPages: pg.DefaultLookaheadPages}).Plan(c)
	if err != nil {
		return fmt.Errorf("plan pg: %w", err)
	}
	esPlan, err := es.NewPlanner(esOpts).Plan(c)
	if err != nil {
		return fmt.Errorf("plan es: %w", err)
	}
	body, err := esPlan.JSON()
	if err != nil {
		return fmt.Errorf("encode es body: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return err
	}

	fmt.Fprintf(w, "criteria: %s\n", c.Key())
	fmt.Fprintf(w, "filter:   %s\n\n", filter.String(c.Filter()))

	fmt.Fprintln(w, "-- pg")
	fmt.Fprintln(w, pgPlan.SQL)
	fmt.Fprintf(w, "-- args: %v\n", pgPlan.Args)
	if pgPlan.CountSQL != "" {
		fmt.Fprintln(w, pgPlan.CountSQL)
		fmt.Fprintf(w, "-- args: %v\n", pgPlan.CountArgs)
	}

	fmt.Fprintf(w, "\n-- es window [%d, %d)\n", esPlan.Window.From, esPlan.Window.To)
	fmt.Fprintln(w, pretty.String())
	return nil
}
