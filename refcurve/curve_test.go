package refcurve

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-12

func TestNew_SortsAndInterpolates(t *testing.T) {
	c, err := New([]Sample{
		{Wavelength: 700, Value: 3},
		{Wavelength: 400, Value: 1},
		{Wavelength: 500, Value: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := c.Domain()
	if lo != 400 || hi != 700 {
		t.Fatalf("domain = [%v, %v], want [400, 700]", lo, hi)
	}

	// Exact at samples.
	for _, s := range []Sample{{400, 1}, {500, 2}, {700, 3}} {
		got, err := c.ValueAt(s.Wavelength)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-s.Value) > eps {
			t.Fatalf("ValueAt(%v) = %v, want %v", s.Wavelength, got, s.Value)
		}
	}

	// Linear between samples.
	got, err := c.ValueAt(450)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1.5) > eps {
		t.Fatalf("ValueAt(450) = %v, want 1.5", got)
	}
}

func TestValueAt_OutOfDomain(t *testing.T) {
	c, err := New([]Sample{{400, 1}, {700, 3}})
	if err != nil {
		t.Fatal(err)
	}

	for _, w := range []float64{399.999, 700.001, 0, 1e6} {
		if _, err := c.ValueAt(w); !errors.Is(err, ErrOutOfDomain) {
			t.Fatalf("ValueAt(%v): got %v, want ErrOutOfDomain", w, err)
		}
	}
}

func TestNew_Rejects(t *testing.T) {
	if _, err := New([]Sample{{400, 1}}); err == nil {
		t.Fatal("expected error for single sample")
	}
	if _, err := New([]Sample{{400, 1}, {400, 2}}); err == nil {
		t.Fatal("expected error for duplicate wavelengths")
	}
}

func TestSetScale(t *testing.T) {
	c, err := New([]Sample{{400, 1}, {700, 3}})
	if err != nil {
		t.Fatal(err)
	}

	c.SetScale(2)
	got, err := c.ValueAt(400)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Fatalf("scaled ValueAt(400) = %v, want 2", got)
	}

	c.SetScale(-1) // ignored
	if c.Scale() != 2 {
		t.Fatalf("scale = %v, want 2", c.Scale())
	}
}

func TestFromFilamentTemp(t *testing.T) {
	c := FromFilamentTemp(2800)

	lo, hi := c.Domain()
	if lo > 400 || hi < 700 {
		t.Fatalf("tungsten domain [%v, %v] does not cover the visible band", lo, hi)
	}

	// Normalized to peak 1.
	peak := 0.0
	for _, s := range c.Samples() {
		if s.Value > peak {
			peak = s.Value
		}
		if s.Value < 0 {
			t.Fatalf("negative radiance at %v nm", s.Wavelength)
		}
	}
	if math.Abs(peak-1) > eps {
		t.Fatalf("peak = %v, want 1", peak)
	}

	// A 2800 K filament is brighter in the red than in the blue.
	blue, err := c.ValueAt(450)
	if err != nil {
		t.Fatal(err)
	}
	red, err := c.ValueAt(650)
	if err != nil {
		t.Fatal(err)
	}
	if red <= blue {
		t.Fatalf("expected red (%v) > blue (%v) at 2800 K", red, blue)
	}
}
