package discussion

import (
	"sort"
)

// Thread is a top-level comment plus its direct replies. Threads are
// recomputed from the flat fetch result on every refresh, never stored.
type Thread struct {
	Parent  *Comment   `json:"parent"`
	Replies []*Comment `json:"replies"`
}

// AssembleThreads groups a flat comment collection into threads, newest
// parent first. Replies keep the order they were supplied in. A reply whose
// parent is missing from the collection, or is itself a reply, belongs to no
// thread and is dropped.
func AssembleThreads(comments []*Comment) []Thread {
	threads := make([]Thread, 0, len(comments))
	index := make(map[uint]int, len(comments))
	for _, c := range comments {
		if !c.TopLevel() {
			continue
		}
		index[c.ID] = len(threads)
		threads = append(threads, Thread{Parent: c})
	}
	for _, c := range comments {
		if c.TopLevel() {
			continue
		}
		i, ok := index[c.ParentID]
		if !ok {
			continue
		}
		threads[i].Replies = append(threads[i].Replies, c)
	}
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].Parent.CreatedAt.After(threads[j].Parent.CreatedAt)
	})
	return threads
}
