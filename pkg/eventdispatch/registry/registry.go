package registry

import (
	"cmp"
	"slices"
	"sort"
	"sync"
)

// Entry is one registration of a handler under an event name.
// Entries are never modified after creation.
type Entry[H comparable] struct {
	Handler  H
	Priority int

	// Sequence is assigned from a registry-wide counter at Add time and
	// breaks ties between equal priorities.
	Sequence uint64
}

// ListenerRegistry maps event names to prioritized handler entries.
type ListenerRegistry[H comparable] struct {
	mu      sync.RWMutex
	entries map[string][]Entry[H]
	sorted  map[string][]H
	seq     uint64
}

// New creates an empty registry.
func New[H comparable]() *ListenerRegistry[H] {
	return &ListenerRegistry[H]{
		entries: make(map[string][]Entry[H]),
		sorted:  make(map[string][]H),
	}
}

// Add registers handler under eventName with the given priority.
// Higher priorities run first. The same handler may be added more than once.
func (r *ListenerRegistry[H]) Add(eventName string, handler H, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.entries[eventName] = append(r.entries[eventName], Entry[H]{
		Handler:  handler,
		Priority: priority,
		Sequence: r.seq,
	})
	delete(r.sorted, eventName)
}

// Remove deletes every entry for eventName whose handler equals handler.
// Unknown names and absent handlers are ignored.
func (r *ListenerRegistry[H]) Remove(eventName string, handler H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(eventName, handler)
}

// RemoveAll deletes every entry for handler under any event name.
func (r *ListenerRegistry[H]) RemoveAll(handler H) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.entries {
		r.removeLocked(name, handler)
	}
}

func (r *ListenerRegistry[H]) removeLocked(eventName string, handler H) {
	list, ok := r.entries[eventName]
	if !ok {
		return
	}

	kept := slices.DeleteFunc(slices.Clone(list), func(e Entry[H]) bool {
		return e.Handler == handler
	})
	if len(kept) == len(list) {
		return
	}

	if len(kept) == 0 {
		delete(r.entries, eventName)
	} else {
		r.entries[eventName] = kept
	}
	delete(r.sorted, eventName)
}

// Listeners returns the handlers for eventName ordered by priority,
// highest first, ties in registration order. Unknown names yield an empty
// slice. The returned slice belongs to the caller.
func (r *ListenerRegistry[H]) Listeners(eventName string) []H {
	r.mu.RLock()
	cached, ok := r.sorted[eventName]
	_, known := r.entries[eventName]
	r.mu.RUnlock()

	if ok {
		return slices.Clone(cached)
	}
	if !known {
		return []H{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Removed between the two locks.
	if _, known := r.entries[eventName]; !known {
		return []H{}
	}
	return slices.Clone(r.sortLocked(eventName))
}

// All returns every event name with its ordered handlers, filling the
// sorted cache for each name along the way.
func (r *ListenerRegistry[H]) All() map[string][]H {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string][]H, len(r.entries))
	for name := range r.entries {
		result[name] = slices.Clone(r.sortLocked(name))
	}
	return result
}

// sortLocked returns the cached order for eventName, building it if needed.
// Caller must hold the write lock.
func (r *ListenerRegistry[H]) sortLocked(eventName string) []H {
	if cached, ok := r.sorted[eventName]; ok {
		return cached
	}

	list := slices.Clone(r.entries[eventName])
	slices.SortStableFunc(list, func(a, b Entry[H]) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence, b.Sequence)
	})

	handlers := make([]H, len(list))
	for i, e := range list {
		handlers[i] = e.Handler
	}
	r.sorted[eventName] = handlers
	return handlers
}

// Has returns true if eventName has at least one entry.
func (r *ListenerRegistry[H]) Has(eventName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[eventName]) > 0
}

// HasAny returns true if any event name has at least one entry.
func (r *ListenerRegistry[H]) HasAny() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, list := range r.entries {
		if len(list) > 0 {
			return true
		}
	}
	return false
}

// Priority returns the priority of the first entry (in registration order)
// for handler under eventName. The boolean is false when no entry matches.
func (r *ListenerRegistry[H]) Priority(eventName string, handler H) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries[eventName] {
		if e.Handler == handler {
			return e.Priority, true
		}
	}
	return 0, false
}

// Entries returns a copy of the raw entries for eventName in registration order.
func (r *ListenerRegistry[H]) Entries(eventName string) []Entry[H] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries[eventName])
}

// Names returns all event names with entries, sorted lexically.
func (r *ListenerRegistry[H]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of entries across all event names.
func (r *ListenerRegistry[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, list := range r.entries {
		n += len(list)
	}
	return n
}

// Range calls fn for every entry, event names in lexical order and entries
// in registration order. If fn returns false, iteration stops.
//
// Range iterates over a snapshot, so fn may call Add or Remove without
// affecting the current iteration.
func (r *ListenerRegistry[H]) Range(fn func(eventName string, e Entry[H]) bool) {
	r.mu.RLock()
	snapshot := make(map[string][]Entry[H], len(r.entries))
	for name, list := range r.entries {
		snapshot[name] = slices.Clone(list)
	}
	r.mu.RUnlock()

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, e := range snapshot[name] {
			if !fn(name, e) {
				return
			}
		}
	}
}
