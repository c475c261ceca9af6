package coords

import (
	"math"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/soniakeys/unit"

	"github.com/oxygene76/tessobs/internal/types"
)

// ParseRA parses right ascension written as "hh mm ss.s". Colons are accepted
// as separators, and trailing components may be omitted ("hh mm.m").
func ParseRA(s string) (unit.RA, error) {
	neg, h, m, sec, err := splitSexagesimal(s)
	if err != nil {
		return 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "right ascension %q: %v", s, err)
	}
	if neg || h >= 24 {
		return 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "right ascension %q out of range", s)
	}
	return unit.NewRA(h, m, sec), nil
}

// ParseDec parses declination written as "±dd mm ss.s"
func ParseDec(s string) (unit.Angle, error) {
	neg, d, m, sec, err := splitSexagesimal(s)
	if err != nil {
		return 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "declination %q: %v", s, err)
	}
	var sign byte = '+'
	if neg {
		sign = '-'
	}
	dec := unit.NewAngle(sign, d, m, sec)
	if math.Abs(dec.Deg()) > 90 {
		return 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "declination %q out of range", s)
	}
	return dec, nil
}

// splitSexagesimal splits "[±]a b c" into its components. Only the last
// component may carry a fraction; a fractional minute is folded into seconds.
func splitSexagesimal(s string) (neg bool, whole, minutes int, seconds float64, err error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ':' })
	if len(fields) == 0 || len(fields) > 3 {
		return false, 0, 0, 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "expected 1 to 3 fields, got %d", len(fields))
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, perr := strconv.ParseFloat(f, 64)
		if perr != nil || v < 0 {
			return false, 0, 0, 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "field %q is not a positive number", f)
		}
		if i < len(fields)-1 && v != math.Trunc(v) {
			return false, 0, 0, 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "only the last field may be fractional, got %q", f)
		}
		if i > 0 && v >= 60 {
			return false, 0, 0, 0, errorsmod.Wrapf(types.ErrMalformedCoordinates, "field %q must be below 60", f)
		}
		values[i] = v
	}

	switch len(values) {
	case 1:
		whole = int(values[0])
		seconds = (values[0] - float64(whole)) * 3600
	case 2:
		whole = int(values[0])
		seconds = values[1] * 60
	case 3:
		whole = int(values[0])
		minutes = int(values[1])
		seconds = values[2]
	}
	return neg, whole, minutes, seconds, nil
}
