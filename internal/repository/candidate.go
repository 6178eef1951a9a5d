package repository

import (
	"context"
	"errors"

	"resumeapi/internal/model"
)

// ErrNotFound is returned by FindByID when no candidate has the given id.
var ErrNotFound = errors.New("candidate not found")

// CandidateRepository owns the candidate collection and the id counter.
// Implementations must be safe for concurrent use.
type CandidateRepository interface {
	// NextID allocates a strictly increasing id starting at 1. Ids are never reused.
	NextID(ctx context.Context) (int64, error)

	// Insert stores a fully built candidate. Iteration order follows insertion order.
	Insert(ctx context.Context, c *model.Candidate) error

	// FindByID returns ErrNotFound when the id is unknown.
	FindByID(ctx context.Context, id int64) (*model.Candidate, error)

	// DeleteByID removes the candidate and reports whether anything was removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// All returns every candidate in insertion order.
	All(ctx context.Context) ([]model.Candidate, error)

	// Count returns the number of stored candidates.
	Count(ctx context.Context) (int, error)
}
