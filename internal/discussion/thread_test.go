package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleThreadsGroupsAndOrders(t *testing.T) {
	a := testComment(1, 0, at(1))
	b := testComment(2, 1, at(2))
	c := testComment(3, 0, at(3))

	threads := AssembleThreads([]*Comment{a, b, c})

	require.Len(t, threads, 2)
	// Newest parent first.
	assert.Equal(t, uint(3), threads[0].Parent.ID)
	assert.Empty(t, threads[0].Replies)
	assert.Equal(t, uint(1), threads[1].Parent.ID)
	require.Len(t, threads[1].Replies, 1)
	assert.Equal(t, uint(2), threads[1].Replies[0].ID)
}

func TestAssembleThreadsKeepsReplySupplyOrder(t *testing.T) {
	parent := testComment(1, 0, at(1))
	r1 := testComment(5, 1, at(9))
	r2 := testComment(4, 1, at(5))
	r3 := testComment(6, 1, at(7))

	// Replies come back in whatever order the gateway supplied, not re-sorted.
	threads := AssembleThreads([]*Comment{parent, r1, r2, r3})

	require.Len(t, threads, 1)
	ids := []uint{}
	for _, r := range threads[0].Replies {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []uint{5, 4, 6}, ids)
}

func TestAssembleThreadsDropsOrphansAndDeepReplies(t *testing.T) {
	top := testComment(1, 0, at(1))
	reply := testComment(2, 1, at(2))
	orphan := testComment(3, 99, at(3))      // parent never fetched
	replyToReply := testComment(4, 2, at(4)) // parent is itself a reply

	threads := AssembleThreads([]*Comment{top, reply, orphan, replyToReply})

	require.Len(t, threads, 1)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, uint(2), threads[0].Replies[0].ID)
}

func TestAssembleThreadsEmpty(t *testing.T) {
	assert.Empty(t, AssembleThreads(nil))
	// Only orphans: nothing to show.
	assert.Empty(t, AssembleThreads([]*Comment{testComment(2, 1, at(1))}))
}

func TestAssembleThreadsOneThreadPerTopLevel(t *testing.T) {
	comments := []*Comment{}
	for i := 1; i <= 10; i++ {
		comments = append(comments, testComment(uint(i), 0, at(i)))
	}
	threads := AssembleThreads(comments)
	require.Len(t, threads, 10)
	for i, th := range threads {
		assert.True(t, th.Parent.TopLevel())
		if i > 0 {
			assert.False(t, th.Parent.CreatedAt.After(threads[i-1].Parent.CreatedAt))
		}
	}
}
