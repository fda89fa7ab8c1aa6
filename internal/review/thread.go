// Package review groups flat inline review comments into ordered threads.
package review

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pr-bridge/prbridge/internal/githubapi"
)

// Thread is a top-level inline comment together with all its replies.
type Thread struct {
	Root    githubapi.ReviewComment
	Replies []githubapi.ReviewComment
}

// Resolved reports whether the thread has been addressed. The REST API does not
// expose per-thread resolution state, so a thread counts as addressed once
// anyone has replied to it; strictly unresolved means no replies at all.
func (t Thread) Resolved() bool {
	return len(t.Replies) > 0
}

// BuildThreads groups a flat comment list into threads. Replies reference their
// parent via InReplyToID; replies whose parent was never returned by the API,
// or whose reply chain never reaches a root, are promoted to roots so that
// every comment lands in exactly one thread. Threads are ordered by file path,
// line, creation time and ID; replies chronologically.
func BuildThreads(comments []githubapi.ReviewComment) []Thread {
	byID := make(map[int64]githubapi.ReviewComment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	var roots []githubapi.ReviewComment
	replies := make(map[int64][]githubapi.ReviewComment)

	for _, c := range comments {
		if c.InReplyToID == 0 {
			roots = append(roots, c)
			continue
		}

		rootID := resolveRootID(byID, c.InReplyToID, len(comments))
		root, ok := byID[rootID]
		if !ok || root.InReplyToID != 0 {
			roots = append(roots, c)
			continue
		}
		replies[rootID] = append(replies[rootID], c)
	}

	threads := make([]Thread, 0, len(roots))
	for _, root := range roots {
		rs := replies[root.ID]
		slices.SortFunc(rs, func(a, b githubapi.ReviewComment) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		threads = append(threads, Thread{Root: root, Replies: rs})
	}

	slices.SortFunc(threads, func(a, b Thread) int {
		if c := strings.Compare(a.Root.Path, b.Root.Path); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Root.Line, b.Root.Line); c != 0 {
			return c
		}
		if c := a.Root.CreatedAt.Compare(b.Root.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Root.ID, b.Root.ID)
	})

	return threads
}

// resolveRootID follows InReplyToID links up to the thread root. The hop limit
// guards against reference cycles in malformed input; a walk that stops on a
// non-root comment means the chain never reached a root.
func resolveRootID(byID map[int64]githubapi.ReviewComment, parentID int64, maxHops int) int64 {
	rootID := parentID
	for hops := 0; hops < maxHops; hops++ {
		parent, ok := byID[rootID]
		if !ok || parent.InReplyToID == 0 {
			break
		}
		rootID = parent.InReplyToID
	}
	return rootID
}
