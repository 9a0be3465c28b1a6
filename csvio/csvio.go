// Package csvio implements the tabular import/export boundary: reference
// curves come in as (wavelength, value) rows, spectra go out as one row per
// bin with wavelength and all four value columns.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/spectro/calib"
	"github.com/cwbudde/spectro/refcurve"
	"github.com/cwbudde/spectro/spectral"
)

// ReadReference parses a reference curve from CSV with one
// (wavelength, value) pair per row. A single header row is tolerated.
// On any parse error no curve is returned, so the caller's prior state
// stays untouched.
func ReadReference(r io.Reader) (*refcurve.Curve, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvio: read reference: %w", err)
	}

	var samples []refcurve.Sample
	for i, rec := range records {
		w, werr := strconv.ParseFloat(rec[0], 64)
		v, verr := strconv.ParseFloat(rec[1], 64)
		if werr != nil || verr != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("csvio: row %d: malformed pair %q,%q", i+1, rec[0], rec[1])
		}
		samples = append(samples, refcurve.Sample{Wavelength: w, Value: v})
	}

	curve, err := refcurve.New(samples)
	if err != nil {
		return nil, fmt.Errorf("csvio: reference: %w", err)
	}
	return curve, nil
}

// WriteSpectrum writes one row per spectral bin with columns
// wavelength, r, g, b, sum. The header row matches the column order.
// No partial-file semantics are guaranteed on error.
func WriteSpectrum(w io.Writer, s *spectral.Spectrum, m calib.Mapping) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"wavelength", "r", "g", "b", "sum"}); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}

	row := make([]string, 5)
	for i := 0; i < s.Bins(); i++ {
		row[0] = formatValue(m.WavelengthAt(float64(i)))
		row[1] = formatValue(s.R[i])
		row[2] = formatValue(s.G[i])
		row[3] = formatValue(s.B[i])
		row[4] = formatValue(s.Sum[i])
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write bin %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
