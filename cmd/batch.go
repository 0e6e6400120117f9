package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadscout/leadscout/internal/discovery"
	"github.com/leadscout/leadscout/internal/model"
	"github.com/leadscout/leadscout/internal/store"
)

var (
	batchInput       string
	batchConcurrency int
	batchMax         int
)

// batchQuery is one sector/location pair from the input CSV.
type batchQuery struct {
	Sector   string
	Location string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run searches for every sector,location row in a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		queries, err := readBatchQueries(batchInput)
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return eris.New("no queries in input file")
		}

		svc, _, err := buildService()
		if err != nil {
			return err
		}
		st, err := initMigratedStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return runBatch(ctx, svc, st, queries, batchConcurrency, batchMax)
	},
}

func readBatchQueries(path string) ([]batchQuery, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	var queries []batchQuery
	for i := 0; ; i++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", path)
		}
		// Skip a header row if present
		if i == 0 && rec[0] == "sector" {
			continue
		}
		queries = append(queries, batchQuery{Sector: rec[0], Location: rec[1]})
	}
	return queries, nil
}

type searcher interface {
	Search(ctx context.Context, sector, location string, maxResults int, forceRefresh bool) ([]model.Lead, error)
}

// runBatch executes queries concurrently. Failed queries are logged and
// skipped so one bad location does not abort the batch.
func runBatch(ctx context.Context, svc searcher, st store.Store, queries []batchQuery, concurrency, maxResults int) error {
	if concurrency <= 0 {
		concurrency = 3
	}

	var succeeded, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, q := range queries {
		g.Go(func() error {
			leads, err := svc.Search(gctx, q.Sector, q.Location, maxResults, false)
			if err != nil {
				failed.Add(1)
				zap.L().Warn("batch query failed",
					zap.String("sector", q.Sector),
					zap.String("location", q.Location),
					zap.Error(err),
				)
				return nil
			}

			run, err := st.CreateSearch(gctx, q.Sector, q.Location, len(leads))
			if err != nil {
				return eris.Wrap(err, "record search")
			}
			if err := st.SaveLeads(gctx, run.ID, leads); err != nil {
				return eris.Wrap(err, "save leads")
			}

			succeeded.Add(1)
			zap.L().Info("batch query complete",
				zap.String("sector", q.Sector),
				zap.String("location", q.Location),
				zap.Int("leads", len(leads)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "CSV file of sector,location rows")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "concurrent searches")
	batchCmd.Flags().IntVar(&batchMax, "max-results", 100, "maximum leads per query")
	batchCmd.MarkFlagRequired("input") //nolint:errcheck
	rootCmd.AddCommand(batchCmd)
}

var _ searcher = (*discovery.Service)(nil)
