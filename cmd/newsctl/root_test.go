package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tickernews/internal/aggregator"
	"tickernews/internal/model"
	"tickernews/pkg/news"
)

type stubSource struct {
	articles []model.RawArticle
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Fetch(ctx context.Context) ([]model.RawArticle, error) {
	return s.articles, nil
}

func TestPrintScores(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	ranked := []model.ScoredArticle{
		{
			RawArticle: model.RawArticle{Headline: "Fed raises rates", Source: "Bloomberg"},
			Recency:    10, Importance: 9, SourceRep: 10, Score: 9.7,
		},
	}

	err := printScores(cmd, ranked)
	if err != nil {
		t.Fatalf("printScores: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines:\n%s", len(lines), out.String())
	}
	fields := strings.Fields(lines[1])
	if fields[0] != "9.7" || fields[4] != "Bloomberg" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	if !names["run"] || !names["sources"] {
		t.Errorf("expected run and sources commands, got %v", names)
	}
}

func TestRankedScores_UsesDefaultLimit(t *testing.T) {
	raw := make([]model.RawArticle, 30)
	for i := range raw {
		raw[i] = model.RawArticle{Headline: fmt.Sprintf("story %d", i), Source: "CNBC", PublishedAt: time.Now()}
	}
	pipeline := aggregator.New([]news.Source{stubSource{articles: raw}}, aggregator.Options{Limit: 0})

	ranked := rankedScores(context.Background(), pipeline)

	if len(ranked) != aggregator.DefaultLimit {
		t.Errorf("expected %d rows, got %d", aggregator.DefaultLimit, len(ranked))
	}
}
