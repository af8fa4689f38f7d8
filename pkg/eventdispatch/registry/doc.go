// Package registry provides a thread-safe, priority-ordered listener registry
// keyed by event name.
//
// ListenerRegistry is generic over the handler identity type. Any comparable
// type works; eventdispatch uses *Listener so that pointer identity decides
// which entries a removal targets.
//
// # Basic Usage
//
//	r := registry.New[*Listener]()
//	r.Add("order.placed", audit, 0)
//	r.Add("order.placed", charge, 10)
//
//	for _, l := range r.Listeners("order.placed") {
//	    // charge, then audit
//	}
//
// # Ordering
//
// Each event name keeps its raw entries in registration order. Listeners
// returns a view sorted by priority, highest first. Entries with equal
// priority keep registration order: the one added first runs first.
//
// The sorted view is memoized per event name and cleared whenever Add or
// Remove touches that name, so repeated lookups between mutations do not
// re-sort.
//
// # Duplicates and Removal
//
// The same handler may be added to one event name several times. Each Add
// creates a distinct entry with its own priority. Remove deletes every entry
// matching the handler for that name; RemoveAll does so for every name.
//
// # Thread Safety
//
// All methods are safe for concurrent use behind a single coarse lock.
// Listeners and All return fresh slices, so callers may iterate them while
// other goroutines (or the handlers themselves) mutate the registry.
package registry
