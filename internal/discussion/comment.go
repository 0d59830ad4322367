package discussion

import (
	"time"
)

// Comment is the read model the fetch gateway delivers: the stored row
// pre-joined with author display fields, authoritative counters and the
// viewer's own vote. The engine mutates counters and ViewerVote during an
// optimistic vote round-trip; everything else is immutable here.
type Comment struct {
	ID               uint      `json:"id"`
	Target           Target    `json:"-"`
	Body             string    `json:"body"`
	AuthorID         uint      `json:"author_id"`
	AuthorName       string    `json:"author_name"`
	AuthorReputation int       `json:"author_reputation"` // snapshot taken at fetch time
	ParentID         uint      `json:"parent_id"`         // 0 for top-level comments
	ReplyCount       int       `json:"reply_count"`
	Upvotes          int       `json:"upvotes"`
	Downvotes        int       `json:"downvotes"`
	Pinned           bool      `json:"pinned"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Mine             bool      `json:"mine"`        // authored by the current viewer
	ViewerVote       int       `json:"viewer_vote"` // -1, 0 or 1
}

// TopLevel reports whether the comment can head a thread.
func (c *Comment) TopLevel() bool {
	return c.ParentID == 0
}

// NetScore is upvotes minus downvotes.
func (c *Comment) NetScore() int {
	return c.Upvotes - c.Downvotes
}
