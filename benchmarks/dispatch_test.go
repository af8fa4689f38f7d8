package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/randalmurphal/eventdispatch/pkg/eventdispatch"
)

// Event for benchmarks.
type Event struct {
	eventdispatch.BaseEvent
	Value int
}

func (*Event) EventName() string { return "bench" }

// noopListener does minimal work to measure dispatcher overhead.
func noopListener(name string) *eventdispatch.Listener {
	return eventdispatch.NewListener(name, func(ctx context.Context, evt eventdispatch.Event) error {
		return nil
	})
}

func listenerID(i int) string {
	return fmt.Sprintf("listener-%d", i)
}

// newDispatcher registers n listeners for "bench" with mixed priorities.
func newDispatcher(n int, opts ...eventdispatch.Option) *eventdispatch.EventDispatcher {
	d := eventdispatch.New(opts...)
	for i := 0; i < n; i++ {
		d.AddListener("bench", noopListener(listenerID(i)), i%7-3)
	}
	return d
}

// BenchmarkNew measures dispatcher creation overhead.
func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		eventdispatch.New()
	}
}

// BenchmarkAddListener_100 measures registering 100 listeners.
func BenchmarkAddListener_100(b *testing.B) {
	listeners := make([]*eventdispatch.Listener, 100)
	for j := range listeners {
		listeners[j] = noopListener(listenerID(j))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := eventdispatch.New()
		for j, l := range listeners {
			d.AddListener("bench", l, j%5)
		}
	}
}

// BenchmarkDispatch_NoListeners measures the orphan path.
func BenchmarkDispatch_NoListeners(b *testing.B) {
	d := eventdispatch.New()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.Dispatch(ctx, &Event{}, "")
	}
}

// BenchmarkDispatch_1 dispatches to a single listener.
func BenchmarkDispatch_1(b *testing.B) {
	benchmarkDispatch(b, 1)
}

// BenchmarkDispatch_10 dispatches to 10 listeners.
func BenchmarkDispatch_10(b *testing.B) {
	benchmarkDispatch(b, 10)
}

// BenchmarkDispatch_100 dispatches to 100 listeners.
func BenchmarkDispatch_100(b *testing.B) {
	benchmarkDispatch(b, 100)
}

func benchmarkDispatch(b *testing.B, n int) {
	d := newDispatcher(n)
	ctx := context.Background()
	// Warm the sorted cache.
	_, _ = d.Dispatch(ctx, &Event{}, "")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.Dispatch(ctx, &Event{Value: i}, "")
	}
}

// BenchmarkDispatch_ColdCache measures dispatch right after a mutation
// invalidated the sorted order.
func BenchmarkDispatch_ColdCache(b *testing.B) {
	d := newDispatcher(50)
	extra := noopListener("extra")
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.AddListener("bench", extra, 0)
		_, _ = d.Dispatch(ctx, &Event{}, "")
		d.RemoveListener("bench", extra)
	}
}

// BenchmarkDispatch_Traceable measures the debug wrapper overhead.
func BenchmarkDispatch_Traceable(b *testing.B) {
	td := eventdispatch.NewTraceable(newDispatcher(10))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%1000 == 0 {
			td.Reset()
		}
		_, _ = td.Dispatch(ctx, &Event{}, "")
	}
}

// BenchmarkDispatch_Parallel dispatches from many goroutines at once.
func BenchmarkDispatch_Parallel(b *testing.B) {
	d := newDispatcher(10)
	ctx := context.Background()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = d.Dispatch(ctx, &Event{}, "")
		}
	})
}

// BenchmarkListeners measures the sorted snapshot lookup.
func BenchmarkListeners(b *testing.B) {
	d := newDispatcher(100)
	_ = d.Listeners("bench")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Listeners("bench")
	}
}
