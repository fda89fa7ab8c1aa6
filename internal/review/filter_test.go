package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-bridge/prbridge/internal/githubapi"
)

func TestValidFilter(t *testing.T) {
	tests := []struct {
		mode string
		want bool
	}{
		{mode: "all", want: true},
		{mode: "unresolved", want: true},
		{mode: "", want: false},
		{mode: "open", want: false},
		{mode: "ALL", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidFilter(tc.mode))
		})
	}
}

func TestFilterThreads_UnresolvedKeepsOnlyUnreplied(t *testing.T) {
	all := BuildThreads([]githubapi.ReviewComment{
		inlineComment(1, "a.go", 10, 0, 0),
		inlineComment(2, "b.go", 5, 1, 0),
		inlineComment(3, "b.go", 5, 2, 2),
		inlineComment(4, "c.go", 1, 3, 0),
	})
	require.Len(t, all, 3)

	unresolved := FilterThreads(all, FilterUnresolved)

	require.Len(t, unresolved, 2)
	assert.Equal(t, []int64{1, 4}, rootIDs(unresolved))
	for _, th := range unresolved {
		assert.False(t, th.Resolved())
		assert.Contains(t, all, th, "every unresolved thread is also in the full set")
	}
}

func TestFilterThreads_AllReturnsInputUnchanged(t *testing.T) {
	threads := BuildThreads([]githubapi.ReviewComment{
		inlineComment(1, "a.go", 10, 0, 0),
		inlineComment(2, "a.go", 10, 1, 1),
	})

	assert.Equal(t, threads, FilterThreads(threads, FilterAll))
}

func TestExcludeAuthors(t *testing.T) {
	comments := []githubapi.ReviewComment{
		{ID: 1, Author: "alice", CreatedAt: time.Now()},
		{ID: 2, Author: "CodeRabbitAI", CreatedAt: time.Now()},
		{ID: 3, Author: "bob", CreatedAt: time.Now()},
	}

	kept := ExcludeAuthors(comments, []string{"coderabbitai", "  "})

	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].ID)
	assert.Equal(t, int64(3), kept[1].ID)
}

func TestExcludeAuthors_EmptyListKeepsEverything(t *testing.T) {
	comments := []githubapi.ReviewComment{
		{ID: 1, Author: "alice"},
		{ID: 2, Author: "bob"},
	}

	assert.Equal(t, comments, ExcludeAuthors(comments, nil))
}

func TestExcludeGeneralAuthors(t *testing.T) {
	comments := []githubapi.IssueComment{
		{ID: 1, Author: "dependabot[bot]"},
		{ID: 2, Author: "carol"},
	}

	kept := ExcludeGeneralAuthors(comments, []string{"Dependabot[bot]"})

	require.Len(t, kept, 1)
	assert.Equal(t, int64(2), kept[0].ID)
}
