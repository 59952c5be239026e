package backend

import (
	"context"
	"sync"

	"mediareport/internal/report"
)

// maxConcurrentLoads bounds parallel report fetches.
const maxConcurrentLoads = 5

// LoadResult is the outcome of loading one report.
type LoadResult struct {
	ID     string
	Source *report.Source
	Err    error
}

// LoadMany loads every id with bounded concurrency. Results keep the order of ids;
// a failed report carries its error and does not stop the others.
func (l *Loader) LoadMany(ctx context.Context, ids []string) []LoadResult {
	results := make([]LoadResult, len(ids))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxConcurrentLoads)
	)

	for i, id := range ids {
		wg.Add(1)

		go func(i int, id string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			src, err := l.Load(ctx, id)
			if err != nil {
				l.logger.Error("failed to load report", "report", id, "error", err)
			}

			results[i] = LoadResult{ID: id, Source: src, Err: err}
		}(i, id)
	}

	wg.Wait()

	return results
}
