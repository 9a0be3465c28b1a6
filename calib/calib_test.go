package calib

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-12

func mustMapping(t *testing.T, low, high Anchor) Mapping {
	t.Helper()
	m, err := NewMapping(low, high)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestWavelengthAt_AnchorsExact(t *testing.T) {
	m := mustMapping(t, Anchor{Index: 0, Wavelength: 400}, Anchor{Index: 99, Wavelength: 700})

	if got := m.WavelengthAt(0); got != 400 {
		t.Fatalf("WavelengthAt(0) = %v, want 400", got)
	}
	if got := m.WavelengthAt(99); got != 700 {
		t.Fatalf("WavelengthAt(99) = %v, want 700", got)
	}
}

func TestWavelengthAt_ExtrapolatesBelow(t *testing.T) {
	m := mustMapping(t, Anchor{Index: 0, Wavelength: 400}, Anchor{Index: 99, Wavelength: 700})

	if got := m.WavelengthAt(-1); got >= 400 {
		t.Fatalf("WavelengthAt(-1) = %v, want < 400 (no clamping)", got)
	}
}

func TestWavelengthAt_AffineAndMonotonic(t *testing.T) {
	m := mustMapping(t, Anchor{Index: 10, Wavelength: 450}, Anchor{Index: 50, Wavelength: 650})

	slope := (650.0 - 450.0) / 40.0
	prev := math.Inf(-1)
	for i := -20.0; i <= 80; i++ {
		got := m.WavelengthAt(i)
		want := 450 + (i-10)*slope
		if math.Abs(got-want) > eps {
			t.Fatalf("WavelengthAt(%v) = %v, want %v", i, got, want)
		}
		if got <= prev {
			t.Fatalf("not strictly increasing at index %v", i)
		}
		prev = got
	}
}

func TestNewMapping_RejectsDegenerate(t *testing.T) {
	if _, err := NewMapping(Anchor{Index: 5, Wavelength: 400}, Anchor{Index: 5, Wavelength: 700}); err == nil {
		t.Fatal("expected error for equal indices")
	}
	if _, err := NewMapping(Anchor{Index: 0, Wavelength: 700}, Anchor{Index: 9, Wavelength: 400}); err == nil {
		t.Fatal("expected error for descending wavelengths")
	}
}

func TestScaling_FactorAt(t *testing.T) {
	var none Scaling
	if got := none.FactorAt(3); got != 1 {
		t.Fatalf("unset scaling: got %v, want 1", got)
	}

	s := Scaling{2, 3}
	if got := s.FactorAt(1); got != 3 {
		t.Fatalf("FactorAt(1) = %v, want 3", got)
	}
	if got := s.FactorAt(7); got != 1 {
		t.Fatalf("out of range: got %v, want 1", got)
	}
}

type fakeRef struct {
	lo, hi float64
}

var errOutside = errors.New("outside domain")

func (f fakeRef) ValueAt(w float64) (float64, error) {
	if w < f.lo || w > f.hi {
		return 0, errOutside
	}
	return 2 * w, nil
}

func TestScalingFromReference(t *testing.T) {
	m := mustMapping(t, Anchor{Index: 0, Wavelength: 400}, Anchor{Index: 3, Wavelength: 700})
	sum := []float64{4, 5, 6, 7}

	s, err := ScalingFromReference(m, sum, fakeRef{lo: 300, hi: 800})
	if err != nil {
		t.Fatal(err)
	}
	for i := range sum {
		want := 2 * m.WavelengthAt(float64(i)) / sum[i]
		if math.Abs(s[i]-want) > eps {
			t.Fatalf("scaling[%d] = %v, want %v", i, s[i], want)
		}
	}
}

func TestScalingFromReference_DomainMissFails(t *testing.T) {
	m := mustMapping(t, Anchor{Index: 0, Wavelength: 400}, Anchor{Index: 3, Wavelength: 700})
	sum := []float64{4, 5, 6, 7}

	s, err := ScalingFromReference(m, sum, fakeRef{lo: 450, hi: 800})
	if err == nil {
		t.Fatal("expected domain miss error")
	}
	if s != nil {
		t.Fatalf("expected no partial result, got %v", s)
	}
	if !errors.Is(err, errOutside) {
		t.Fatalf("lookup error not wrapped: %v", err)
	}
}
