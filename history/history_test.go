package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreAddElidesAdjacentDuplicate(t *testing.T) {
	s := NewStore()
	s.Add(Item{Text: "ls -l"})
	s.Add(Item{Text: "ls -l"})
	s.Add(Item{Text: "echo hi"})

	items := s.Items()
	require.Len(t, items, 2)
	require.Equal(t, "echo hi", items[0].Text)
	require.Equal(t, "ls -l", items[1].Text)
}

func TestStoreSearchPrefix(t *testing.T) {
	s := NewStore()
	s.Add(Item{Text: "git commit"})
	s.Add(Item{Text: "git push"})
	s.Add(Item{Text: "ls"})

	c := &Cursor{Term: "git", Match: MatchPrefix, Position: -1}
	it, ok := s.Search(c, DirBackward)
	require.True(t, ok)
	require.Equal(t, "git push", it.Text)

	it, ok = s.Search(c, DirBackward)
	require.True(t, ok)
	require.Equal(t, "git commit", it.Text)

	_, ok = s.Search(c, DirBackward)
	require.False(t, ok)
}

func TestStoreSearchContains(t *testing.T) {
	s := NewStore()
	s.Add(Item{Text: "make build"})
	s.Add(Item{Text: "go build ./..."})
	s.Add(Item{Text: "ls"})

	c := &Cursor{Term: "build", Match: MatchContains, Position: -1}
	it, ok := s.Search(c, DirBackward)
	require.True(t, ok)
	require.Equal(t, "go build ./...", it.Text)
}

func TestStoreDeletePreventsResurrection(t *testing.T) {
	s := NewStore()
	s.Add(Item{Text: "secret-command"})
	s.Delete("secret-command")

	s.MergeNewer([]Item{{Text: "secret-command", Timestamp: time.Now()}})
	for _, it := range s.Items() {
		require.NotEqual(t, "secret-command", it.Text)
	}
}

func TestStoreMergeNewerDeduplicates(t *testing.T) {
	s := NewStore()
	s.Add(Item{Text: "existing"})
	s.MergeNewer([]Item{
		{Text: "existing", Timestamp: time.Now()},
		{Text: "brand-new", Timestamp: time.Now()},
	})

	var texts []string
	for _, it := range s.Items() {
		texts = append(texts, it.Text)
	}
	require.Contains(t, texts, "brand-new")
	require.Len(t, texts, 2)
}
