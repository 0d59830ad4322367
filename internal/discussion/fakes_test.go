package discussion

import (
	"context"
	"sync"
	"time"
)

type voteCall struct {
	commentID uint
	value     int
}

// fakeStore implements PersistenceGateway with programmable behavior.
type fakeStore struct {
	mu        sync.Mutex
	voteCalls []voteCall
	nextID    uint

	voteFn    func(commentID uint, value int) (VoteCounts, error)
	commentFn func(target Target, body string, parentID uint) (uint, error)
}

func (f *fakeStore) SubmitComment(_ context.Context, target Target, body string, parentID uint) (uint, error) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.mu.Unlock()
	if f.commentFn != nil {
		return f.commentFn(target, body, parentID)
	}
	return id, nil
}

func (f *fakeStore) SubmitVote(_ context.Context, commentID uint, value int) (VoteCounts, error) {
	f.mu.Lock()
	f.voteCalls = append(f.voteCalls, voteCall{commentID, value})
	f.mu.Unlock()
	if f.voteFn != nil {
		return f.voteFn(commentID, value)
	}
	return VoteCounts{}, nil
}

func (f *fakeStore) votes() []voteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]voteCall, len(f.voteCalls))
	copy(out, f.voteCalls)
	return out
}

// fakeFetch implements FetchGateway over a fixed collection, handing out
// copies so the engine's mutations never leak back into the fixture.
type fakeFetch struct {
	comments []*Comment
	err      error
	calls    int
}

func (f *fakeFetch) FetchComments(_ context.Context, _ Target) ([]*Comment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*Comment, len(f.comments))
	for i, c := range f.comments {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func at(sec int) time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func testComment(id, parentID uint, created time.Time) *Comment {
	return &Comment{
		ID:         id,
		Target:     Target{Type: TargetCarrierGeneral, ID: 7},
		Body:       "looks legit, hauled for them twice",
		AuthorID:   42,
		AuthorName: "dispatcher_dan",
		ParentID:   parentID,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}
