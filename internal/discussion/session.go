package discussion

import (
	"context"
	"fmt"
)

// Session is the façade for one target's discussion: it fetches the flat
// comment collection, assembles threads, and exposes submit and vote
// operations. Construct one per target with its gateways injected; there is
// no shared global state between sessions.
type Session struct {
	target Target
	fetch  FetchGateway
	store  PersistenceGateway
	votes  *VoteEngine

	comments []*Comment
	byID     map[uint]*Comment
	threads  []Thread
}

func NewSession(target Target, fetch FetchGateway, store PersistenceGateway) *Session {
	return &Session{
		target: target,
		fetch:  fetch,
		store:  store,
		votes:  NewVoteEngine(store),
		byID:   make(map[uint]*Comment),
	}
}

func (s *Session) Target() Target {
	return s.target
}

// Refresh replaces the local collection with the gateway's current state
// and rebuilds the threads. The fetched state also becomes the vote
// engine's rollback baseline.
func (s *Session) Refresh(ctx context.Context) error {
	comments, err := s.fetch.FetchComments(ctx, s.target)
	if err != nil {
		return fmt.Errorf("fetch comments for %s: %w", s.target, err)
	}
	s.comments = comments
	s.byID = make(map[uint]*Comment, len(comments))
	for _, c := range comments {
		s.byID[c.ID] = c
	}
	s.threads = AssembleThreads(comments)
	s.votes.Observe(comments)
	return nil
}

// Threads returns the assembled view from the last refresh, newest parent
// first.
func (s *Session) Threads() []Thread {
	return s.threads
}

// Comment looks up one comment from the last refresh.
func (s *Session) Comment(id uint) (*Comment, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// SubmitComment validates the body, rejects replies to anything but a known
// top-level comment, commits through the gateway and refreshes so the
// thread view reflects authoritative state. parentID 0 starts a new thread.
//
// The assembler would silently drop a reply-to-reply later anyway; failing
// here gives the caller an actionable error instead of silent loss.
func (s *Session) SubmitComment(ctx context.Context, raw string, parentID uint) (uint, error) {
	body, err := ValidateBody(raw)
	if err != nil {
		return 0, err
	}
	if parentID != 0 {
		parent, ok := s.byID[parentID]
		if !ok || !parent.TopLevel() {
			return 0, ErrParentNotTopLevel
		}
	}
	id, err := s.store.SubmitComment(ctx, s.target, body, parentID)
	if err != nil {
		return 0, fmt.Errorf("submit comment: %w", err)
	}
	if err := s.Refresh(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// Vote toggles the viewer's vote on a comment from the last refresh. After
// a confirmed vote the session refreshes; an ignored or failed toggle
// leaves the collection as the engine left it.
func (s *Session) Vote(ctx context.Context, commentID uint, value int) (VoteOutcome, error) {
	c, ok := s.byID[commentID]
	if !ok {
		return VoteFailed, ErrUnknownComment
	}
	outcome, err := s.votes.Toggle(ctx, c, value)
	if outcome == VoteApplied {
		if rerr := s.Refresh(ctx); rerr != nil {
			return outcome, rerr
		}
	}
	return outcome, err
}
