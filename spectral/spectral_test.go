package spectral

import "testing"

func TestNewFrame_LengthMismatch(t *testing.T) {
	_, err := NewFrame([]float64{1, 2}, []float64{1, 2}, []float64{1})
	if err == nil {
		t.Fatal("expected error for mismatched channel lengths")
	}
}

func TestFrameClone_Independent(t *testing.T) {
	f, err := NewFrame([]float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	if err != nil {
		t.Fatal(err)
	}
	c := f.Clone()
	c.R[0] = 99
	if f.R[0] != 1 {
		t.Fatalf("clone aliases original: %v", f.R)
	}
	if c.Bins() != f.Bins() {
		t.Fatalf("clone bin count %d, want %d", c.Bins(), f.Bins())
	}
}

func TestSpectrumSub(t *testing.T) {
	s := &Spectrum{
		R: []float64{2}, G: []float64{2}, B: []float64{2}, Sum: []float64{6},
	}
	ref := &Spectrum{
		R: []float64{1}, G: []float64{1}, B: []float64{1}, Sum: []float64{3},
	}
	s.Sub(ref)

	want := []float64{1, 1, 1, 3}
	got := []float64{s.R[0], s.G[0], s.B[0], s.Sum[0]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSpectrumSub_BinMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on bin count mismatch")
		}
	}()
	ZeroSpectrum(4).Sub(ZeroSpectrum(5))
}
