package discussion

import (
	"context"
	"fmt"
	"sync"
)

// VoteOutcome tells the caller what happened to a toggle request.
type VoteOutcome int

const (
	// VoteApplied means the gateway confirmed the vote and the comment now
	// carries authoritative counters.
	VoteApplied VoteOutcome = iota
	// VoteIgnored means a vote for this comment was already in flight; the
	// request was dropped, not queued.
	VoteIgnored
	// VoteFailed means the gateway rejected the vote and the comment was
	// rolled back to its last fetched state.
	VoteFailed
)

func (o VoteOutcome) String() string {
	switch o {
	case VoteApplied:
		return "applied"
	case VoteIgnored:
		return "ignored"
	default:
		return "failed"
	}
}

type voteSnapshot struct {
	vote      int
	upvotes   int
	downvotes int
}

// VoteEngine owns per-comment vote transitions: toggle semantics, the
// optimistic local update, and rollback to the last fetched snapshot when
// the gateway refuses the write. One in-flight vote per comment; duplicates
// are ignored. Votes on different comments are independent.
type VoteEngine struct {
	store PersistenceGateway

	mu        sync.Mutex
	inFlight  map[uint]bool
	snapshots map[uint]voteSnapshot
}

func NewVoteEngine(store PersistenceGateway) *VoteEngine {
	return &VoteEngine{
		store:     store,
		inFlight:  make(map[uint]bool),
		snapshots: make(map[uint]voteSnapshot),
	}
}

// Observe records freshly fetched comments as the rollback baseline. A
// failed vote reverts to this state, not to whatever unconfirmed optimistic
// state preceded it. In-flight flags are left alone.
func (e *VoteEngine) Observe(comments []*Comment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshots = make(map[uint]voteSnapshot, len(comments))
	for _, c := range comments {
		e.snapshots[c.ID] = voteSnapshot{c.ViewerVote, c.Upvotes, c.Downvotes}
	}
}

// Toggle applies the viewer's vote to c. Requesting the value the viewer
// already holds clears the vote. The comment is updated optimistically
// before the gateway call, reconciled with the returned counters on
// success, and rolled back on failure.
func (e *VoteEngine) Toggle(ctx context.Context, c *Comment, value int) (VoteOutcome, error) {
	if value != 1 && value != -1 {
		return VoteFailed, ErrInvalidVoteValue
	}

	e.mu.Lock()
	if e.inFlight[c.ID] {
		e.mu.Unlock()
		return VoteIgnored, nil
	}
	e.inFlight[c.ID] = true
	base, ok := e.snapshots[c.ID]
	if !ok {
		base = voteSnapshot{c.ViewerVote, c.Upvotes, c.Downvotes}
		e.snapshots[c.ID] = base
	}
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.inFlight, c.ID)
		e.mu.Unlock()
	}()

	prev := c.ViewerVote
	next := 0
	if prev != value {
		next = value
	}

	// Remove the previous vote's contribution, then add the new one.
	up, down := c.Upvotes, c.Downvotes
	switch prev {
	case 1:
		if up > 0 {
			up--
		}
	case -1:
		if down > 0 {
			down--
		}
	}
	switch next {
	case 1:
		up++
	case -1:
		down++
	}
	c.ViewerVote, c.Upvotes, c.Downvotes = next, up, down

	counts, err := e.store.SubmitVote(ctx, c.ID, next)
	if err != nil {
		c.ViewerVote, c.Upvotes, c.Downvotes = base.vote, base.upvotes, base.downvotes
		return VoteFailed, fmt.Errorf("submit vote: %w", err)
	}
	c.Upvotes, c.Downvotes = counts.Upvotes, counts.Downvotes
	return VoteApplied, nil
}
