// Package palette assigns background colours to rendered pieces.
//
// Colours cycle through eight hues spaced 135° apart on the hue circle with
// fixed saturation and lightness. Since gcd(135, 360) = 45, eight steps visit
// every position of the 45° lattice before a hue repeats, so neighbouring
// pieces never share a colour.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// Period is the number of distinct colours before the cycle repeats.
	Period = 8
	// HueStep is the hue increment in degrees between consecutive indices.
	HueStep = 135
	// Saturation and Lightness are percentages held fixed for every colour.
	Saturation = 40
	Lightness  = 70
)

// HSL is a colour in CSS hsl() terms. Hue is in degrees [0, 360);
// saturation and lightness are percentages.
type HSL struct {
	Hue        int
	Saturation int
	Lightness  int
}

// ColorFor returns the colour for the piece at index. It depends only on
// index mod Period; negative indices fold into the same cycle.
func ColorFor(index int) HSL {
	slot := index % Period
	if slot < 0 {
		slot += Period
	}

	return HSL{
		Hue:        (slot * HueStep) % 360,
		Saturation: Saturation,
		Lightness:  Lightness,
	}
}

// String returns the CSS form, e.g. "hsl(135,40%,70%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d,%d%%,%d%%)", c.Hue, c.Saturation, c.Lightness)
}

// Hex converts the colour to "#rrggbb" for surfaces without hsl() support.
func (c HSL) Hex() string {
	return colorful.Hsl(float64(c.Hue), float64(c.Saturation)/100, float64(c.Lightness)/100).Clamped().Hex()
}

// MarshalText encodes the colour in its CSS form.
func (c HSL) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the CSS form produced by MarshalText.
func (c *HSL) UnmarshalText(text []byte) error {
	var parsed HSL

	_, err := fmt.Sscanf(string(text), "hsl(%d,%d%%,%d%%)", &parsed.Hue, &parsed.Saturation, &parsed.Lightness)
	if err != nil {
		return fmt.Errorf("parse colour %q: %w", text, err)
	}

	*c = parsed

	return nil
}
