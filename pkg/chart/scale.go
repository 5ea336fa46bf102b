package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/asciigraph/pkg/errors"
)

// RangeMode selects how the vertical axis bounds are chosen.
type RangeMode int

const (
	// RangeMinToMax spans the observed minimum to the observed maximum.
	RangeMinToMax RangeMode = iota
	// RangeZeroToMax spans zero to the observed maximum.
	RangeZeroToMax
	// RangeCustom spans caller-supplied bounds.
	RangeCustom
)

// ScalePolicy describes the vertical range of a chart.
// Lower and Upper are only meaningful for RangeCustom.
type ScalePolicy struct {
	Mode  RangeMode
	Lower float64
	Upper float64
}

// MinToMax scales between the smallest and largest value.
func MinToMax() ScalePolicy { return ScalePolicy{Mode: RangeMinToMax} }

// ZeroToMax scales between zero and the largest value.
func ZeroToMax() ScalePolicy { return ScalePolicy{Mode: RangeZeroToMax} }

// Custom scales between lower and upper. An inverted range is reported by
// [ResolveScale], not here.
func Custom(lower, upper float64) ScalePolicy {
	return ScalePolicy{Mode: RangeCustom, Lower: lower, Upper: upper}
}

// String returns the textual form accepted by [ParseScalePolicy].
func (p ScalePolicy) String() string {
	switch p.Mode {
	case RangeMinToMax:
		return "min-max"
	case RangeZeroToMax:
		return "zero-max"
	case RangeCustom:
		return formatBound(p.Lower) + ":" + formatBound(p.Upper)
	default:
		return fmt.Sprintf("range(%d)", int(p.Mode))
	}
}

// ParseScalePolicy parses "min-max", "zero-max" or "LOWER:UPPER".
// An inverted custom range parses successfully; it fails at render time.
func ParseScalePolicy(s string) (ScalePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "min-max", "min2max", "minmax":
		return MinToMax(), nil
	case "zero-max", "zero2max", "zeromax":
		return ZeroToMax(), nil
	}
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return ScalePolicy{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid range %q (must be min-max, zero-max or LOWER:UPPER)", s)
	}
	lower, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return ScalePolicy{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid range lower bound %q", lo)
	}
	upper, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return ScalePolicy{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid range upper bound %q", hi)
	}
	for _, v := range []float64{lower, upper} {
		if err := errors.ValidateValue("range", v); err != nil {
			return ScalePolicy{}, err
		}
	}
	return Custom(lower, upper), nil
}

// MarshalText implements encoding.TextMarshaler.
func (p ScalePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [ParseScalePolicy].
func (p *ScalePolicy) UnmarshalText(b []byte) error {
	parsed, err := ParseScalePolicy(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ResolvedScale is the calibration of the vertical axis: the value of the
// lowest plotted level and the distance between adjacent levels.
type ResolvedScale struct {
	Origin    float64
	Increment float64
}

// Level returns the value represented by plotted level i (0 is the lowest).
func (s ResolvedScale) Level(i int) float64 {
	return float64(i)*s.Increment + s.Origin
}

// ResolveScale computes the axis calibration for values under policy p,
// spreading the range over plottedRows increments.
//
// For ZeroToMax the origin is always 0 and negative values never raise the
// maximum above 0. A Custom range with Lower > Upper fails with
// INVERTED_CUSTOM_RANGE; values outside a custom range are allowed.
func ResolveScale(values []float64, p ScalePolicy, plottedRows int) (ResolvedScale, error) {
	if plottedRows < 1 {
		return ResolvedScale{}, errors.New(errors.ErrCodeHeightTooSmall,
			"no room for plotted rows (%d)", plottedRows)
	}
	rows := float64(plottedRows)

	switch p.Mode {
	case RangeCustom:
		if p.Lower > p.Upper {
			return ResolvedScale{}, errors.New(errors.ErrCodeInvertedCustomRange,
				"custom range lower bound %v exceeds upper bound %v", p.Lower, p.Upper)
		}
		return ResolvedScale{Origin: p.Lower, Increment: (p.Upper - p.Lower) / rows}, nil

	case RangeZeroToMax:
		if len(values) == 0 {
			return ResolvedScale{}, errors.New(errors.ErrCodeNoData, "no values to scale")
		}
		hi := 0.0
		for _, v := range values {
			hi = max(hi, v)
		}
		return ResolvedScale{Origin: 0, Increment: hi / rows}, nil

	case RangeMinToMax:
		if len(values) == 0 {
			return ResolvedScale{}, errors.New(errors.ErrCodeNoData, "no values to scale")
		}
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
		return ResolvedScale{Origin: lo, Increment: (hi - lo) / rows}, nil

	default:
		return ResolvedScale{}, errors.New(errors.ErrCodeInvalidInput, "unknown range mode %d", int(p.Mode))
	}
}
