package discussion

import (
	"context"
)

// VoteCounts are the authoritative counters the persistence gateway returns
// after committing a vote. They may differ from the engine's optimistic
// guess when other members voted in between.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// FetchGateway delivers the flat comment collection for one target,
// pre-joined with author display fields, the viewer's own vote and current
// aggregate counts, newest first.
type FetchGateway interface {
	FetchComments(ctx context.Context, target Target) ([]*Comment, error)
}

// PersistenceGateway commits writes. Both operations require an
// authenticated caller and fail with ErrAuthenticationRequired otherwise.
type PersistenceGateway interface {
	// SubmitComment stores a validated comment and returns its id.
	// parentID is 0 for a top-level comment.
	SubmitComment(ctx context.Context, target Target, body string, parentID uint) (uint, error)

	// SubmitVote records the viewer's vote value (-1, 0 or 1) for the
	// comment and returns the authoritative counters.
	SubmitVote(ctx context.Context, commentID uint, value int) (VoteCounts, error)
}
