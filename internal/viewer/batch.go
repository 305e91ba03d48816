package viewer

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one identifier in a batch.
type Result struct {
	ID   string
	Page *Page
	Err  error
}

// EvaluateAll evaluates ids with at most limit fetches in flight. Results
// keep the order of ids; one failure does not stop the others.
func (e *Evaluator) EvaluateAll(ctx context.Context, ids []string, limit int) []Result {
	if limit <= 0 {
		limit = 1
	}
	results := make([]Result, len(ids))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i].ID = id
			if err := ctx.Err(); err != nil {
				results[i].Err = &FetchError{ID: id, Err: err}
				return nil
			}
			results[i].Page, results[i].Err = e.Evaluate(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	e.logger.Info("batch finished", zap.Int("total", len(ids)), zap.Int("failed", failed))
	return results
}

// Failed reports whether every result in rs failed.
func Failed(rs []Result) bool {
	for _, r := range rs {
		if r.Err == nil {
			return false
		}
	}
	return len(rs) > 0
}
