// Package control models device controls at the acquisition boundary as a
// tagged variant: each control carries a kind (integer, boolean, or menu)
// with kind-specific bounds or items, instead of being inspected through
// runtime type assertions.
package control

import "fmt"

// Kind discriminates the control variants.
type Kind int

const (
	// Integer is a bounded numeric control with a step size.
	Integer Kind = iota
	// Boolean is an on/off control stored as 0 or 1.
	Boolean
	// Menu is a discrete choice among enumerated items.
	Menu
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Menu:
		return "menu"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MenuItem is one selectable entry of a Menu control.
type MenuItem struct {
	Value int32  `yaml:"value"`
	Name  string `yaml:"name"`
}

// Control is one device control with its current value and kind-specific
// metadata. Min/Max/Step apply to Integer controls, Items to Menu controls.
type Control struct {
	ID      uint32     `yaml:"id"`
	Name    string     `yaml:"name"`
	Kind    Kind       `yaml:"kind"`
	Value   int32      `yaml:"value"`
	Default int32      `yaml:"default,omitempty"`
	Min     int32      `yaml:"min,omitempty"`
	Max     int32      `yaml:"max,omitempty"`
	Step    int32      `yaml:"step,omitempty"`
	Items   []MenuItem `yaml:"items,omitempty"`
}

// Validate reports whether the control's value is acceptable for its kind.
func (c Control) Validate() error {
	switch c.Kind {
	case Integer:
		if c.Min > c.Max {
			return fmt.Errorf("control %q: min %d > max %d", c.Name, c.Min, c.Max)
		}
		if c.Value < c.Min || c.Value > c.Max {
			return fmt.Errorf("control %q: value %d outside [%d, %d]", c.Name, c.Value, c.Min, c.Max)
		}
	case Boolean:
		if c.Value != 0 && c.Value != 1 {
			return fmt.Errorf("control %q: boolean value %d", c.Name, c.Value)
		}
	case Menu:
		for _, item := range c.Items {
			if item.Value == c.Value {
				return nil
			}
		}
		return fmt.Errorf("control %q: value %d matches no menu item", c.Name, c.Value)
	default:
		return fmt.Errorf("control %q: unknown kind %v", c.Name, c.Kind)
	}
	return nil
}

// Clamp coerces the control's value into its valid range: Integer values
// are clamped to [Min, Max] and snapped to the step grid, Boolean values
// to 0/1, Menu values to the first item when no item matches.
func (c *Control) Clamp() {
	switch c.Kind {
	case Integer:
		if c.Value < c.Min {
			c.Value = c.Min
		}
		if c.Value > c.Max {
			c.Value = c.Max
		}
		if c.Step > 1 {
			c.Value = c.Min + (c.Value-c.Min)/c.Step*c.Step
		}
	case Boolean:
		if c.Value != 0 {
			c.Value = 1
		}
	case Menu:
		if c.Validate() != nil && len(c.Items) > 0 {
			c.Value = c.Items[0].Value
		}
	}
}
