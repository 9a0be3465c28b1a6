// Package config persists the operator-facing configuration: calibration
// anchors, channel gains, postprocessing settings, detection parameters and
// the import/export path. The on-disk format is YAML; the package converts
// between the flat file schema and the typed domain objects.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/spectro/calib"
	"github.com/cwbudde/spectro/control"
	"github.com/cwbudde/spectro/detect"
	"github.com/cwbudde/spectro/linearize"
	"github.com/cwbudde/spectro/pipeline"
)

// Config is the root of the persisted configuration file.
type Config struct {
	Calibration    Calibration       `yaml:"calibration"`
	Postprocessing Postprocessing    `yaml:"postprocessing"`
	Detection      Detection         `yaml:"detection"`
	Reference      Reference         `yaml:"reference"`
	Controls       []control.Control `yaml:"controls,omitempty"`
	ImportExport   string            `yaml:"import_export_path,omitempty"`
}

// Calibration holds the anchor pairs and channel gains.
type Calibration struct {
	LowIndex       int     `yaml:"low_index"`
	LowWavelength  float64 `yaml:"low_wavelength"`
	HighIndex      int     `yaml:"high_index"`
	HighWavelength float64 `yaml:"high_wavelength"`
	Linearize      string  `yaml:"linearize"`
	GainR          float64 `yaml:"gain_r"`
	GainG          float64 `yaml:"gain_g"`
	GainB          float64 `yaml:"gain_b"`
}

// Postprocessing holds the averaging and filtering knobs.
type Postprocessing struct {
	BufferSize    int     `yaml:"buffer_size"`
	FilterEnabled bool    `yaml:"filter_enabled"`
	FilterCutoff  float64 `yaml:"filter_cutoff"`
}

// Detection holds the extremum detector parameters.
type Detection struct {
	FindWindow   int     `yaml:"find_window"`
	UniqueWindow float64 `yaml:"unique_window"`
}

// Reference holds the reference curve scale; the curve itself is imported
// separately from CSV.
type Reference struct {
	Scale float64 `yaml:"scale"`
}

// Default returns the configuration a fresh installation starts with.
func Default() Config {
	s := pipeline.DefaultSettings()
	return Config{
		Calibration: Calibration{
			LowIndex:       0,
			LowWavelength:  400,
			HighIndex:      1000,
			HighWavelength: 700,
			Linearize:      linearize.Off.String(),
			GainR:          1,
			GainG:          1,
			GainB:          1,
		},
		Postprocessing: Postprocessing{
			BufferSize:    s.BufferSize,
			FilterEnabled: s.FilterEnabled,
			FilterCutoff:  s.FilterCutoff,
		},
		Detection: Detection{
			FindWindow:   10,
			UniqueWindow: 5,
		},
		Reference: Reference{Scale: 1},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes the configuration to path, replacing any existing file.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// Validate checks the file-level invariants that the typed conversions
// depend on.
func (c Config) Validate() error {
	if _, err := c.Mapping(); err != nil {
		return err
	}
	if _, err := c.Settings(); err != nil {
		return err
	}
	if c.Detection.FindWindow < 1 {
		return fmt.Errorf("config: find window %d < 1", c.Detection.FindWindow)
	}
	if c.Detection.UniqueWindow <= 0 {
		return fmt.Errorf("config: unique window %v <= 0", c.Detection.UniqueWindow)
	}
	for _, ctrl := range c.Controls {
		if err := ctrl.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// Mapping converts the calibration anchors.
func (c Config) Mapping() (calib.Mapping, error) {
	return calib.NewMapping(
		calib.Anchor{Index: c.Calibration.LowIndex, Wavelength: c.Calibration.LowWavelength},
		calib.Anchor{Index: c.Calibration.HighIndex, Wavelength: c.Calibration.HighWavelength},
	)
}

// Settings converts the postprocessing and calibration sections into a
// pipeline settings snapshot.
func (c Config) Settings() (pipeline.Settings, error) {
	mode, err := linearize.ParseMode(c.Calibration.Linearize)
	if err != nil {
		return pipeline.Settings{}, fmt.Errorf("config: %w", err)
	}
	s := pipeline.Settings{
		BufferSize:    c.Postprocessing.BufferSize,
		FilterEnabled: c.Postprocessing.FilterEnabled,
		FilterCutoff:  c.Postprocessing.FilterCutoff,
		Linearize:     mode,
		Gains: pipeline.Gains{
			R: c.Calibration.GainR,
			G: c.Calibration.GainG,
			B: c.Calibration.GainB,
		},
	}
	if err := s.Validate(); err != nil {
		return pipeline.Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// DetectParams converts the detection section.
func (c Config) DetectParams() detect.Params {
	return detect.Params{
		FindWindow:   c.Detection.FindWindow,
		UniqueWindow: c.Detection.UniqueWindow,
	}
}
