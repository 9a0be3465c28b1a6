package framebuf

import (
	"testing"

	"github.com/cwbudde/spectro/internal/testutil"
	"github.com/cwbudde/spectro/spectral"
)

const eps = 1e-12

func constFrame(n int, v float64) spectral.Frame {
	f, _ := spectral.NewFrame(testutil.DC(v, n), testutil.DC(v, n), testutil.DC(v, n))
	return f
}

func TestPush_NewestFirstAndTrim(t *testing.T) {
	b := New(2)

	b.Push(constFrame(4, 1))
	b.Push(constFrame(4, 2))
	b.Push(constFrame(4, 3))

	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	// Mean over frames {3, 2} per bin.
	m := b.Mean()
	testutil.RequireSliceNearlyEqual(t, m.R, testutil.DC(2.5, 4), eps)
}

func TestPush_DimensionChangeClears(t *testing.T) {
	b := New(10)
	b.Push(constFrame(4, 1))
	b.Push(constFrame(4, 2))

	changed := b.Push(constFrame(8, 5))
	if !changed {
		t.Fatal("expected dimension change to be reported")
	}
	if b.Len() != 1 {
		t.Fatalf("len after dimension change = %d, want 1", b.Len())
	}
	if b.Bins() != 8 {
		t.Fatalf("bins = %d, want 8", b.Bins())
	}
}

func TestPush_SameDimensionNotReported(t *testing.T) {
	b := New(10)
	if b.Push(constFrame(4, 1)) {
		t.Fatal("first push must not report a dimension change")
	}
	if b.Push(constFrame(4, 2)) {
		t.Fatal("same-dimension push must not report a change")
	}
}

func TestMean_IdenticalFramesIdempotent(t *testing.T) {
	b := New(5)
	f := constFrame(16, 0.75)
	for i := 0; i < 5; i++ {
		b.Push(f)
	}

	m := b.Mean()
	testutil.RequireSliceNearlyEqual(t, m.R, f.R, eps)
	testutil.RequireSliceNearlyEqual(t, m.G, f.G, eps)
	testutil.RequireSliceNearlyEqual(t, m.B, f.B, eps)
}

func TestMean_PartialFillDividesByLength(t *testing.T) {
	// Capacity 3, frames [1],[2],[3] per channel: mean must be 2 even
	// though the configured capacity is larger than needed here.
	b := New(3)
	b.Push(constFrame(1, 1))
	b.Push(constFrame(1, 2))
	b.Push(constFrame(1, 3))

	m := b.Mean()
	if m.R[0] != 2 || m.G[0] != 2 || m.B[0] != 2 {
		t.Fatalf("mean = %v %v %v, want 2 2 2", m.R[0], m.G[0], m.B[0])
	}

	// Two frames only: divide by 2, not by capacity.
	b2 := New(3)
	b2.Push(constFrame(1, 1))
	b2.Push(constFrame(1, 3))
	if got := b2.Mean().R[0]; got != 2 {
		t.Fatalf("partial mean = %v, want 2", got)
	}
}

func TestMean_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty buffer")
		}
	}()
	New(3).Mean()
}

func TestSetCapacity_ClampsAndTrims(t *testing.T) {
	b := New(0)
	if b.Cap() != MinCapacity {
		t.Fatalf("cap = %d, want %d", b.Cap(), MinCapacity)
	}
	b.SetCapacity(1000)
	if b.Cap() != MaxCapacity {
		t.Fatalf("cap = %d, want %d", b.Cap(), MaxCapacity)
	}

	for i := 0; i < 10; i++ {
		b.Push(constFrame(2, float64(i)))
	}
	b.SetCapacity(4)
	if b.Len() != 4 {
		t.Fatalf("len after shrink = %d, want 4", b.Len())
	}
	// Newest frames survive: 9,8,7,6 → mean 7.5.
	testutil.RequireSliceNearlyEqual(t, b.Mean().R, testutil.DC(7.5, 2), eps)
}

func BenchmarkMean(b *testing.B) {
	buf := New(32)
	for i := 0; i < 32; i++ {
		buf.Push(constFrame(1024, float64(i)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Mean()
	}
}
