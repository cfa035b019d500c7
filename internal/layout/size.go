package layout

import (
	"math"
	"strconv"
	"strings"
)

// Unit specifies how a Size is interpreted
type Unit uint8

const (
	UnitAuto    Unit = iota // Determined by content and children
	UnitFixed               // Absolute points
	UnitPercent             // Percentage of the parent's resolved dimension
)

// Size is a declared dimension: auto, a fixed number of points, or a
// percentage of the immediate parent.
type Size struct {
	Amount float64
	Unit   Unit
}

// Auto returns a size computed from content and children
func Auto() Size {
	return Size{Unit: UnitAuto}
}

// Fixed returns a size of n points
func Fixed(n float64) Size {
	return Size{Amount: n, Unit: UnitFixed}
}

// Percent returns a size of p percent of the parent (50 = 50%)
func Percent(p float64) Size {
	return Size{Amount: p, Unit: UnitPercent}
}

// IsAuto reports whether the size is undetermined until content is measured
func (s Size) IsAuto() bool {
	return s.Unit == UnitAuto
}

// String formats the size the way ParseSize reads it
func (s Size) String() string {
	switch s.Unit {
	case UnitAuto:
		return "auto"
	case UnitPercent:
		return strconv.FormatFloat(s.Amount, 'f', -1, 64) + "%"
	default:
		return strconv.FormatFloat(s.Amount, 'f', -1, 64)
	}
}

// Validate checks that the declaration can be resolved
func (s Size) Validate() error {
	switch s.Unit {
	case UnitAuto:
		return nil
	case UnitFixed, UnitPercent:
		if math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) {
			return &InvalidSizeError{Value: s.String(), Reason: "not a finite number"}
		}
		return nil
	default:
		return &InvalidSizeError{Value: s.String(), Reason: "unknown unit " + strconv.Itoa(int(s.Unit))}
	}
}

// ParseSize parses a size declaration:
//   - "" or "auto" is auto
//   - "50%" is a percentage
//   - "12", "12px" or "12pt" is a fixed size in points
func ParseSize(value string) (Size, error) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" || v == "auto" {
		return Auto(), nil
	}

	if strings.HasSuffix(v, "%") {
		p, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return Size{}, &InvalidSizeError{Value: value, Reason: "malformed percentage"}
		}
		s := Percent(p)
		return s, s.Validate()
	}

	v = strings.TrimSuffix(strings.TrimSuffix(v, "px"), "pt")
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return Size{}, &InvalidSizeError{Value: value, Reason: "not a number"}
	}
	s := Fixed(n)
	return s, s.Validate()
}

// MustParseSize is like ParseSize but panics on malformed input
func MustParseSize(value string) Size {
	s, err := ParseSize(value)
	if err != nil {
		panic(err)
	}
	return s
}

// ResolveSize resolves a declared size against the parent's dimension. Auto
// resolves to 0.
func ResolveSize(parent float64, declared Size) (float64, error) {
	return ResolveSizeOr(parent, declared, nil)
}

// ResolveSizeOr resolves a declared size against the parent's dimension. Auto
// resolves to def(), or 0 when def is nil. A NaN parent counts as 0.
func ResolveSizeOr(parent float64, declared Size, def func() float64) (float64, error) {
	if err := declared.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(parent) {
		parent = 0
	}
	switch declared.Unit {
	case UnitFixed:
		return declared.Amount, nil
	case UnitPercent:
		return parent * declared.Amount / 100, nil
	default:
		if def != nil {
			return def(), nil
		}
		return 0, nil
	}
}
