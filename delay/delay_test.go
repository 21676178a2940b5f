package delay

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPureDelay(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64} {
		l := New(n)
		var got []float32
		for i := 0; i <= 2*n; i++ {
			got = append(got, l.Tick(float32(i+1)))
		}
		for i, y := range got {
			want := float32(0)
			if i >= n {
				want = float32(i - n + 1)
			}
			if y != want {
				t.Errorf("n=%d: Tick #%d = %v, want: %v", n, i+1, y, want)
			}
		}
		// The (n+1)th call returns what the first call pushed.
		if got[n] != 1 {
			t.Errorf("n=%d: Tick #%d = %v, want: 1", n, n+1, got[n])
		}
	}
}

func TestPeek(t *testing.T) {
	l := New(3)
	for i := 0; i < 10; i++ {
		p := l.Peek()
		if y := l.Tick(float32(i)); y != p {
			t.Fatalf("Peek() = %v, then Tick() = %v", p, y)
		}
	}
}

func TestResizeResets(t *testing.T) {
	for _, c := range []struct {
		from, to, capacity int
	}{
		{4, 4, 4},
		{4, 2, 4},
		{2, 8, 2},
		{3, 5, 16},
		{16, 1, 16},
	} {
		l := WithCapacity(c.from, c.capacity)
		for i := 0; i < 3*c.from+1; i++ {
			l.Tick(1)
		}
		l.Resize(c.to)
		if l.Len() != c.to {
			t.Errorf("%+v: Len() = %d after Resize", c, l.Len())
		}
		got := make([]float32, c.to)
		for i := range got {
			got[i] = l.Tick(2)
		}
		if diff := cmp.Diff(make([]float32, c.to), got); diff != "" {
			t.Errorf("%+v: first %d ticks after Resize not silent (-want +got):\n%s", c, c.to, diff)
		}
		if y := l.Tick(3); y != 2 {
			t.Errorf("%+v: Tick after refill = %v, want: 2", c, y)
		}
	}
}

func TestNeverEmpty(t *testing.T) {
	for _, n := range []int{0, -5} {
		l := New(n)
		if l.Len() != 1 {
			t.Errorf("New(%d).Len() = %d, want: 1", n, l.Len())
		}
		l.Resize(n)
		if l.Len() != 1 {
			t.Errorf("Resize(%d): Len() = %d, want: 1", n, l.Len())
		}
		if y := l.Tick(1); y != 0 {
			t.Errorf("Tick on fresh line = %v", y)
		}
		if y := l.Tick(2); y != 1 {
			t.Errorf("second Tick = %v, want: 1", y)
		}
	}
}

func TestResizeWithinCapacityDoesNotAllocate(t *testing.T) {
	l := WithCapacity(1, 16)
	allocs := testing.AllocsPerRun(100, func() {
		l.Resize(16)
		l.Tick(1)
		l.Resize(3)
	})
	if allocs != 0 {
		t.Errorf("Resize within capacity allocated %v times", allocs)
	}
}
