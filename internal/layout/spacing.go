package layout

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Spacing declares the four sides of a margin or padding. Auto sides resolve
// to 0.
type Spacing struct {
	Top, Right, Bottom, Left Size
}

// Insets holds the four resolved sides of a Spacing
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns the sum of Left and Right
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Vertical returns the sum of Top and Bottom
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}

// SpaceAll returns a Spacing with the same declaration on all sides
func SpaceAll(s Size) Spacing {
	return Spacing{Top: s, Right: s, Bottom: s, Left: s}
}

// SpaceSymmetric returns a Spacing with vertical (top/bottom) and horizontal
// (left/right) declarations
func SpaceSymmetric(v, h Size) Spacing {
	return Spacing{Top: v, Right: h, Bottom: v, Left: h}
}

// SpaceTRBL returns a Spacing in CSS order: top, right, bottom, left
func SpaceTRBL(t, r, b, l Size) Spacing {
	return Spacing{Top: t, Right: r, Bottom: b, Left: l}
}

// Validate checks every side
func (s Spacing) Validate() error {
	var result *multierror.Error
	for _, side := range []struct {
		name string
		size Size
	}{{"top", s.Top}, {"right", s.Right}, {"bottom", s.Bottom}, {"left", s.Left}} {
		if err := side.size.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", side.name, err))
		}
	}
	return result.ErrorOrNil()
}

// ParseSpacing parses CSS shorthand like:
//   - "10"
//   - "10 20%"
//   - "10 15 8"
//   - "10 12 8 6"
func ParseSpacing(value string) (Spacing, error) {
	parts := strings.Fields(strings.ReplaceAll(value, ",", " "))
	if len(parts) == 0 {
		return Spacing{}, nil
	}
	if len(parts) > 4 {
		return Spacing{}, &InvalidSizeError{Value: value, Reason: "more than four values"}
	}

	sizes := make([]Size, len(parts))
	for i, p := range parts {
		s, err := ParseSize(p)
		if err != nil {
			return Spacing{}, err
		}
		sizes[i] = s
	}

	switch len(sizes) {
	case 1:
		return SpaceAll(sizes[0]), nil
	case 2:
		return SpaceSymmetric(sizes[0], sizes[1]), nil
	case 3:
		return SpaceTRBL(sizes[0], sizes[1], sizes[2], sizes[1]), nil
	default:
		return SpaceTRBL(sizes[0], sizes[1], sizes[2], sizes[3]), nil
	}
}

// ResolveSpacing resolves left/right against parentW and top/bottom against
// parentH
func ResolveSpacing(parentW, parentH float64, s Spacing) (Insets, error) {
	var out Insets
	var err error
	if out.Top, err = ResolveSize(parentH, s.Top); err != nil {
		return Insets{}, fmt.Errorf("top: %w", err)
	}
	if out.Right, err = ResolveSize(parentW, s.Right); err != nil {
		return Insets{}, fmt.Errorf("right: %w", err)
	}
	if out.Bottom, err = ResolveSize(parentH, s.Bottom); err != nil {
		return Insets{}, fmt.Errorf("bottom: %w", err)
	}
	if out.Left, err = ResolveSize(parentW, s.Left); err != nil {
		return Insets{}, fmt.Errorf("left: %w", err)
	}
	return out, nil
}
