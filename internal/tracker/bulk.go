package tracker

import (
	"context"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// DefaultBatchSize is the bulk batch size when the caller does not set
// one.
const DefaultBatchSize = 10

// BulkDeleteOptions controls a bulk issue deletion.
type BulkDeleteOptions struct {
	BatchSize int
	// ContinueOnError records a failed item and moves on. When false,
	// the first failure aborts the run and propagates; items already
	// processed keep their effects (no rollback).
	ContinueOnError bool
	DryRun          bool
	Force           bool
}

// BulkItemResult is one item's outcome, in input order.
type BulkItemResult struct {
	Identifier   string
	Success      bool
	DeletedCount int
	Error        string
}

// BulkDeleteResult aggregates a bulk run.
type BulkDeleteResult struct {
	Success        bool
	TotalRequested int
	SuccessCount   int
	FailedCount    int
	Batches        int
	Results        []BulkItemResult
}

// BulkDeleteIssues cascade-deletes a list of issues in consecutive
// batches of BatchSize. Items run strictly sequentially, within and
// across batches; batching exists to give callers progress-sized chunks
// to report on, not parallelism.
func BulkDeleteIssues(ctx context.Context, c huly.Client, identifiers []string, opts BulkDeleteOptions) (*BulkDeleteResult, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	result := &BulkDeleteResult{
		TotalRequested: len(identifiers),
		Batches:        (len(identifiers) + batchSize - 1) / batchSize,
	}

	for start := 0; start < len(identifiers); start += batchSize {
		end := start + batchSize
		if end > len(identifiers) {
			end = len(identifiers)
		}
		for _, ident := range identifiers[start:end] {
			item, err := DeleteIssue(ctx, c, ident, DeleteIssueOptions{
				Cascade: true,
				Force:   opts.Force,
				DryRun:  opts.DryRun,
			})
			if err != nil {
				if !opts.ContinueOnError {
					return nil, err
				}
				result.FailedCount++
				result.Results = append(result.Results, BulkItemResult{
					Identifier: ident,
					Error:      err.Error(),
				})
				continue
			}
			result.SuccessCount++
			result.Results = append(result.Results, BulkItemResult{
				Identifier:   ident,
				Success:      true,
				DeletedCount: item.DeletedCount,
			})
		}
	}

	result.Success = result.FailedCount == 0
	return result, nil
}
