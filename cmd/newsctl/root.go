package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tickernews/internal/aggregator"
	"tickernews/internal/app"
	"tickernews/internal/config"
	"tickernews/internal/model"
	"tickernews/internal/ranking"
)

var (
	flagLimit   int
	flagScores  bool
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "newsctl",
	Short:        "Run the market news pipeline from the command line",
	SilenceUsage: true,
}

func init() {
	runCmd.Flags().IntVar(&flagLimit, "limit", 0, "number of articles to keep (default ARTICLE_LIMIT)")
	runCmd.Flags().BoolVar(&flagScores, "scores", false, "print the score breakdown instead of the JSON response")
	runCmd.Flags().DurationVar(&flagTimeout, "timeout", time.Minute, "overall deadline for the run")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sourcesCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, rate and rank articles once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagLimit > 0 {
			cfg.ArticleLimit = flagLimit
		}

		pipeline, err := app.NewAggregator(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()

		if flagScores {
			return printScores(cmd, rankedScores(ctx, pipeline))
		}

		articles, err := pipeline.Run(ctx)
		if err != nil {
			return fmt.Errorf("running pipeline: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Articles []model.Article `json:"articles"`
		}{articles})
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured feed sources and their reputation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tREPUTATION\tURL")
		for _, f := range cfg.Feeds {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Name, f.Kind, ranking.DefaultReputationTable.Lookup(f.Name), f.URL)
		}
		return w.Flush()
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// stdout is reserved for the command's own output.
	app.SetupLogging(os.Stderr, cfg.LogLevel)
	return cfg, nil
}

// rankedScores keeps the breakdown that Run strips from its output.
func rankedScores(ctx context.Context, pipeline *aggregator.Aggregator) []model.ScoredArticle {
	scored := pipeline.Score(ctx, pipeline.Collect(ctx))
	return aggregator.Rank(scored, pipeline.Limit())
}

func printScores(cmd *cobra.Command, ranked []model.ScoredArticle) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tRECENCY\tIMPORTANCE\tSOURCE\tPUBLISHER\tHEADLINE")
	for _, s := range ranked {
		fmt.Fprintf(w, "%.1f\t%d\t%d\t%d\t%s\t%s\n", s.Score, s.Recency, s.Importance, s.SourceRep, s.Source, s.Headline)
	}
	return w.Flush()
}
