package spsc

import (
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFIFO(t *testing.T) {
	q := New[int](4)
	for i := 1; i <= 3; i++ {
		if !q.Push(i) {
			t.Fatalf("Push(%d) = false on a queue with room", i)
		}
	}
	var got []int
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("popped values (-want +got):\n%s", diff)
	}
}

func TestOverflowDrops(t *testing.T) {
	const capacity, pushes = 200, 250
	q := New[int](capacity)
	var accepted, rejected int
	for i := 0; i < pushes; i++ {
		if q.Push(i) {
			accepted++
		} else {
			rejected++
		}
	}
	if accepted != capacity || rejected != pushes-capacity {
		t.Fatalf("accepted %d, rejected %d; want: %d, %d", accepted, rejected, capacity, pushes-capacity)
	}
	if q.Len() != capacity {
		t.Fatalf("Len() = %d, want: %d", q.Len(), capacity)
	}

	// The newest accepted value survives, everything after it was dropped.
	v, ok := q.DrainLatest()
	if !ok || v != capacity-1 {
		t.Fatalf("DrainLatest() = %d, %v; want: %d, true", v, ok, capacity-1)
	}
	if q.Len() != 0 {
		t.Fatalf("Len() after drain = %d, want: 0", q.Len())
	}

	// And the queue is still usable, across the wrap point.
	for i := 0; i < capacity; i++ {
		if !q.Push(1000 + i) {
			t.Fatalf("Push after drain failed at %d", i)
		}
	}
	if q.Push(-1) {
		t.Fatal("Push on a full queue after wrap succeeded")
	}
	for i := 0; i < capacity; i++ {
		v, ok := q.Pop()
		if !ok || v != 1000+i {
			t.Fatalf("Pop() = %d, %v; want: %d, true", v, ok, 1000+i)
		}
	}
}

func TestDrainLatestEmpty(t *testing.T) {
	q := New[string](2)
	if v, ok := q.DrainLatest(); ok || v != "" {
		t.Errorf("DrainLatest() on empty = %q, %v", v, ok)
	}
	q.Push("first")
	q.Push("second")
	if v, ok := q.DrainLatest(); !ok || v != "second" {
		t.Errorf("DrainLatest() = %q, %v; want: second, true", v, ok)
	}
}

func TestNewPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New[int](0)
}

// TestConcurrent is mostly useful under -race.
func TestConcurrent(t *testing.T) {
	const n = 100000
	q := New[int](64)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; {
			if !q.Push(i) {
				runtime.Gosched()
				continue
			}
			i++
		}
	}()

	next := 0
	for next < n {
		v, ok := q.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		if v != next {
			t.Fatalf("Pop() = %d, want: %d", v, next)
		}
		next++
	}
	wg.Wait()
}
