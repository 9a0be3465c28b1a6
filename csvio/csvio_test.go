package csvio

import (
	"strings"
	"testing"

	"github.com/cwbudde/spectro/calib"
	"github.com/cwbudde/spectro/spectral"
)

func TestReadReference_WithHeader(t *testing.T) {
	in := "wavelength,value\n400,1\n500,2.5\n700,3\n"
	c, err := ReadReference(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := c.Domain()
	if lo != 400 || hi != 700 {
		t.Fatalf("domain = [%v, %v], want [400, 700]", lo, hi)
	}
	v, err := c.ValueAt(500)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2.5 {
		t.Fatalf("ValueAt(500) = %v, want 2.5", v)
	}
}

func TestReadReference_WithoutHeader(t *testing.T) {
	c, err := ReadReference(strings.NewReader("400,1\n700,3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if lo, _ := c.Domain(); lo != 400 {
		t.Fatalf("domain low = %v, want 400", lo)
	}
}

func TestReadReference_MalformedFails(t *testing.T) {
	cases := []string{
		"400,1\nnot,numeric\n",    // bad row past the header slot
		"400,1,extra\n700,3\n",    // wrong column count
		"wavelength,value\n4,1\n", // only one data row
		"",
	}
	for _, in := range cases {
		if _, err := ReadReference(strings.NewReader(in)); err == nil {
			t.Fatalf("input %q: expected error", in)
		}
	}
}

func TestWriteSpectrum(t *testing.T) {
	s := &spectral.Spectrum{
		R:   []float64{1, 2},
		G:   []float64{3, 4},
		B:   []float64{5, 6},
		Sum: []float64{9, 12},
	}
	m, err := calib.NewMapping(
		calib.Anchor{Index: 0, Wavelength: 400},
		calib.Anchor{Index: 1, Wavelength: 500},
	)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := WriteSpectrum(&sb, s, m); err != nil {
		t.Fatal(err)
	}

	want := "wavelength,r,g,b,sum\n400,1,3,5,9\n500,2,4,6,12\n"
	if sb.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestRoundTrip_SpectrumColumnsAsReference(t *testing.T) {
	// The exported wavelength/sum columns must themselves be a valid
	// reference once reduced to two columns.
	in := "400,9\n500,12\n"
	c, err := ReadReference(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.ValueAt(450)
	if err != nil {
		t.Fatal(err)
	}
	if v != 10.5 {
		t.Fatalf("ValueAt(450) = %v, want 10.5", v)
	}
}
