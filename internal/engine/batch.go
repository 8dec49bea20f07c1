package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/querykit/pkg/core"
	"golang.org/x/sync/errgroup"
)

// BatchItem is one unit of work for ProcessBatch.
type BatchItem struct {
	// ID identifies the item in results. A random ID is assigned when empty.
	ID     string      `json:"id,omitempty" yaml:"id"`
	Name   string      `json:"name,omitempty" yaml:"name"`
	Input  string      `json:"input" yaml:"input"`
	Config core.Config `json:"config" yaml:"config"`
}

// BatchResult pairs a batch item with its result.
type BatchResult struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Result   core.ToolResult `json:"result"`
	Duration time.Duration   `json:"duration"`
}

// ProcessBatch processes items concurrently and returns results in item
// order. It stops scheduling new items when ctx is canceled and returns the
// context error; results for unprocessed items are left zero.
func (e *Engine) ProcessBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	results := make([]BatchResult, len(items))
	batchID := uuid.NewString()
	e.logger.Debug("starting batch", "batch_id", batchID, "items", len(items), "concurrency", e.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := item.ID
			if id == "" {
				id = uuid.NewString()
			}

			start := time.Now()
			res := e.Process(item.Input, item.Config)
			results[i] = BatchResult{
				ID:       id,
				Name:     item.Name,
				Result:   res,
				Duration: time.Since(start),
			}
			e.logger.Debug("processed batch item", "batch_id", batchID, "id", id, "success", res.Success)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
