package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handler stands in for a listener; pointer identity matters.
type handler struct{ name string }

func newHandlers(names ...string) []*handler {
	hs := make([]*handler, len(names))
	for i, n := range names {
		hs[i] = &handler{name: n}
	}
	return hs
}

func names(hs []*handler) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.name
	}
	return out
}

func TestNew(t *testing.T) {
	r := New[*handler]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.HasAny())
	assert.Empty(t, r.Names())
}

func TestListenersOrdering(t *testing.T) {
	tests := []struct {
		name       string
		priorities []int
		want       []string
	}{
		{"higher priority first", []int{0, 10}, []string{"h1", "h0"}},
		{"equal priorities keep registration order", []int{0, 0, 0}, []string{"h0", "h1", "h2"}},
		{"negative priorities last", []int{-10, 0, 5}, []string{"h2", "h1", "h0"}},
		{"mixed ties", []int{5, 0, 5, 0}, []string{"h0", "h2", "h1", "h3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New[*handler]()
			for i, p := range tt.priorities {
				r.Add("evt", &handler{name: fmt.Sprintf("h%d", i)}, p)
			}
			assert.Equal(t, tt.want, names(r.Listeners("evt")))
		})
	}
}

func TestListenersMixedPriorities(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("A", "B", "C")

	r.Add("foo", hs[1], 0)
	r.Add("foo", hs[0], 10)
	r.Add("foo", hs[2], 0)

	assert.Equal(t, []string{"A", "B", "C"}, names(r.Listeners("foo")))
}

func TestListenersUnknownName(t *testing.T) {
	r := New[*handler]()

	got := r.Listeners("missing")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListenersDoesNotReorderRaw(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("low", "high")
	r.Add("evt", hs[0], -5)
	r.Add("evt", hs[1], 5)

	_ = r.Listeners("evt")

	entries := r.Entries("evt")
	require.Len(t, entries, 2)
	assert.Equal(t, "low", entries[0].Handler.name)
	assert.Equal(t, "high", entries[1].Handler.name)
	assert.Less(t, entries[0].Sequence, entries[1].Sequence)
}

func TestListenersReturnsCopy(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("a", "b")
	r.Add("evt", hs[0], 0)
	r.Add("evt", hs[1], 0)

	got := r.Listeners("evt")
	got[0], got[1] = got[1], got[0]

	assert.Equal(t, []string{"a", "b"}, names(r.Listeners("evt")))
}

func TestCacheInvalidation(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("a", "b", "c")

	r.Add("evt", hs[0], 0)
	assert.Equal(t, []string{"a"}, names(r.Listeners("evt")))

	r.Add("evt", hs[1], 100)
	assert.Equal(t, []string{"b", "a"}, names(r.Listeners("evt")))

	r.Remove("evt", hs[1])
	assert.Equal(t, []string{"a"}, names(r.Listeners("evt")))

	// Mutating another name leaves this one intact.
	r.Add("other", hs[2], 50)
	assert.Equal(t, []string{"a"}, names(r.Listeners("evt")))
}

func TestDuplicateRegistration(t *testing.T) {
	r := New[*handler]()
	h := &handler{name: "dup"}
	other := &handler{name: "other"}

	r.Add("evt", h, 1)
	r.Add("evt", other, 5)
	r.Add("evt", h, 10)

	assert.Equal(t, []string{"dup", "other", "dup"}, names(r.Listeners("evt")))
	assert.Equal(t, 3, r.Len())

	// First match in registration order wins.
	p, ok := r.Priority("evt", h)
	assert.True(t, ok)
	assert.Equal(t, 1, p)

	r.Remove("evt", h)
	assert.Equal(t, []string{"other"}, names(r.Listeners("evt")))
}

func TestRemove(t *testing.T) {
	t.Run("unknown name is a no-op", func(t *testing.T) {
		r := New[*handler]()
		r.Remove("missing", &handler{})
		assert.False(t, r.HasAny())
	})

	t.Run("absent handler is a no-op", func(t *testing.T) {
		r := New[*handler]()
		h := &handler{name: "h"}
		r.Add("evt", h, 0)
		r.Remove("evt", &handler{name: "h"})
		assert.Equal(t, []string{"h"}, names(r.Listeners("evt")))
	})

	t.Run("last entry drops the name", func(t *testing.T) {
		r := New[*handler]()
		h := &handler{name: "h"}
		r.Add("evt", h, 0)
		r.Remove("evt", h)

		assert.False(t, r.Has("evt"))
		assert.NotContains(t, r.Names(), "evt")
		assert.NotContains(t, r.All(), "evt")
	})
}

func TestRemoveAll(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("shared", "keep")

	r.Add("a", hs[0], 0)
	r.Add("b", hs[0], 3)
	r.Add("b", hs[1], 0)

	r.RemoveAll(hs[0])

	assert.False(t, r.Has("a"))
	assert.Equal(t, []string{"keep"}, names(r.Listeners("b")))
}

func TestHas(t *testing.T) {
	r := New[*handler]()
	h := &handler{}

	assert.False(t, r.Has("evt"))
	assert.False(t, r.HasAny())

	r.Add("evt", h, 0)
	assert.True(t, r.Has("evt"))
	assert.True(t, r.HasAny())
	assert.False(t, r.Has("EVT"), "names are case-sensitive")
}

func TestPriorityAbsent(t *testing.T) {
	r := New[*handler]()
	h := &handler{}
	r.Add("evt", h, 0)

	_, ok := r.Priority("other", h)
	assert.False(t, ok)

	_, ok = r.Priority("evt", &handler{})
	assert.False(t, ok)

	p, ok := r.Priority("evt", h)
	assert.True(t, ok)
	assert.Equal(t, 0, p)
}

func TestAll(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("a", "b", "c")

	r.Add("x", hs[0], 0)
	r.Add("x", hs[1], 1)
	r.Add("y", hs[2], 0)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, []string{"b", "a"}, names(all["x"]))
	assert.Equal(t, []string{"c"}, names(all["y"]))

	// All fills the cache for every name.
	r.mu.RLock()
	assert.Len(t, r.sorted, 2)
	r.mu.RUnlock()
}

func TestNames(t *testing.T) {
	r := New[*handler]()
	r.Add("zeta", &handler{}, 0)
	r.Add("alpha", &handler{}, 0)

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

func TestRange(t *testing.T) {
	r := New[*handler]()
	hs := newHandlers("a", "b", "c")
	r.Add("two", hs[1], 0)
	r.Add("one", hs[0], 0)
	r.Add("two", hs[2], 9)

	var seen []string
	r.Range(func(name string, e Entry[*handler]) bool {
		seen = append(seen, name+":"+e.Handler.name)
		return true
	})
	assert.Equal(t, []string{"one:a", "two:b", "two:c"}, seen)

	t.Run("early stop", func(t *testing.T) {
		count := 0
		r.Range(func(string, Entry[*handler]) bool {
			count++
			return false
		})
		assert.Equal(t, 1, count)
	})

	t.Run("mutation during range", func(t *testing.T) {
		r.Range(func(name string, e Entry[*handler]) bool {
			r.Remove(name, e.Handler)
			return true
		})
		assert.False(t, r.HasAny())
	})
}

func TestConcurrentAccess(t *testing.T) {
	r := New[*handler]()
	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := &handler{name: fmt.Sprintf("h%d", i)}
			for j := range 100 {
				r.Add("evt", h, j%3)
				_ = r.Listeners("evt")
				_ = r.Has("evt")
			}
			r.Remove("evt", h)
		}(i)
	}

	wg.Wait()
	assert.False(t, r.Has("evt"))
}
