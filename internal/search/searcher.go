// Package search provides the record search collaborator: the narrow
// interface the pipeline consumes, an HTTP client for a hosted corpus, and
// an in-process searcher over a local corpus file.
package search

import (
	"context"

	"github.com/jayscottaf/pairscout/internal/model"
)

// Searcher retrieves pairings matching a canonical filter specification.
// Implementations fail with *model.SearchError on transport or storage
// failure and must honor, at minimum, exact match, numeric min/max, the
// single free-text field, and the sort hint.
type Searcher interface {
	Search(ctx context.Context, spec model.SearchSpec) ([]model.Pairing, error)
}
