package digest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDigest(source string) Digest {
	return Digest{
		Source:     source,
		Summary:    "summary of " + source,
		Tree:       "tree of " + source,
		Content:    "content of " + source,
		IngestedAt: time.Now().UTC(),
	}
}

func TestStore_PutGet(t *testing.T) {
	s := NewStore()

	t.Run("get after put returns the digest", func(t *testing.T) {
		d := newTestDigest("https://github.com/owner/repo")
		s.Put(d)

		got, err := s.Get("https://github.com/owner/repo")
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("get of unknown key fails with known keys listed", func(t *testing.T) {
		_, err := s.Get("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotIngested)
		assert.Contains(t, err.Error(), "https://github.com/owner/repo")
	})

	t.Run("put replaces in place without changing order", func(t *testing.T) {
		d := newTestDigest("https://github.com/owner/repo")
		d.Summary = "replaced"
		s.Put(d)

		got, err := s.Get("https://github.com/owner/repo")
		require.NoError(t, err)
		assert.Equal(t, "replaced", got.Summary)
		assert.Len(t, s.List(), 1)
	})
}

func TestStore_Resolve(t *testing.T) {
	s := NewStore()
	s.Put(newTestDigest("https://github.com/owner/alpha"))
	s.Put(newTestDigest("/home/user/projects/beta"))

	t.Run("exact key resolves to itself", func(t *testing.T) {
		key, err := s.Resolve("https://github.com/owner/alpha")
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/owner/alpha", key)
	})

	t.Run("short name resolves by suffix", func(t *testing.T) {
		key, err := s.Resolve("alpha")
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/owner/alpha", key)

		key, err = s.Resolve("beta")
		require.NoError(t, err)
		assert.Equal(t, "/home/user/projects/beta", key)
	})

	t.Run("first suffix match in insertion order wins", func(t *testing.T) {
		s := NewStore()
		s.Put(newTestDigest("https://github.com/one/repo"))
		s.Put(newTestDigest("https://github.com/two/repo"))

		key, err := s.Resolve("repo")
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/one/repo", key)
	})

	t.Run("no match fails with known keys", func(t *testing.T) {
		_, err := s.Resolve("gamma")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotIngested)
		assert.Contains(t, err.Error(), "alpha")
		assert.Contains(t, err.Error(), "beta")
	})

	t.Run("empty query on empty store reports none", func(t *testing.T) {
		s := NewStore()
		_, err := s.Resolve("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "none")
	})
}

func TestStore_List(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		s.Put(newTestDigest(fmt.Sprintf("repo-%d", i)))
	}

	assert.Equal(t, []string{"repo-0", "repo-1", "repo-2", "repo-3", "repo-4"}, s.List())
	assert.Equal(t, 5, s.Len())
}

// TestStore_AtomicReplace checks that a reader never observes a digest whose
// facets come from two different ingestions of the same source.
func TestStore_AtomicReplace(t *testing.T) {
	s := NewStore()
	s.Put(Digest{Source: "repo", Summary: "v0", Tree: "v0", Content: "v0"})

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			v := fmt.Sprintf("v%d", i)
			s.Put(Digest{Source: "repo", Summary: v, Tree: v, Content: v})
		}
		close(done)
	}()

	for {
		d, err := s.Get("repo")
		require.NoError(t, err)
		assert.Equal(t, d.Summary, d.Tree)
		assert.Equal(t, d.Summary, d.Content)
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
	}
}
