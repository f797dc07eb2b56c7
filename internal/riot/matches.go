package riot

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the parallel match-detail fan-out.
const maxConcurrentFetches = 10

// Matches fetches match documents for the given IDs concurrently, preserving
// input order. Individual fetch failures are logged and the match skipped so
// one bad document never fails a whole history page; only context
// cancellation aborts the fan-out.
func (c *Client) Matches(ctx context.Context, matchIDs []string) ([]*Match, error) {
	results := make([]*Match, len(matchIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, matchID := range matchIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			match, err := c.MatchByID(ctx, matchID)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("match_id", matchID).
					Msg("Failed to fetch match, skipping")
				return nil
			}
			results[i] = match
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]*Match, 0, len(results))
	for _, match := range results {
		if match != nil {
			matches = append(matches, match)
		}
	}
	return matches, nil
}
