package timespan

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Second counts of the units understood by Parse.
const (
	Minute = 60
	Hour   = 60 * Minute
	Day    = 24 * Hour
	Month  = 30 * Day
)

// ErrMissingDigits is returned when a unit letter is not preceded by a number.
var ErrMissingDigits = errors.New("must have digits before unit")

// ErrUnexpectedSymbol is returned for characters that are neither digits, units nor separators.
var ErrUnexpectedSymbol = errors.New("unexpected symbol")

// ErrUnfinishedComponent is returned when the span ends with a number that has no unit.
var ErrUnfinishedComponent = errors.New("unfinished component")

// ErrInvalidNumber is returned when the digits before a unit do not form a valid number.
var ErrInvalidNumber = errors.New("invalid number")

// ParseError describes why a span could not be parsed.
// Use errors.Is with one of the Err* reasons to inspect it.
type ParseError struct {
	Span   string
	Reason error
	Token  string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("timespan %q: %v", e.Span, e.Reason)
	}

	return fmt.Sprintf("timespan %q: %v: %s", e.Span, e.Reason, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Reason
}

//nolint:gochecknoglobals // lookup table.
var multipliers = map[rune]int64{
	's': 1,
	'm': Minute,
	'h': Hour,
	'd': Day,
}

// Parse converts a span like "1d 2h 30m" or "90" into whole seconds.
//
// A plain integer is returned as is. Otherwise the span is read as a list of
// <number><unit> components with units s, m, h and d (case-insensitive);
// components may be separated by spaces, commas, semicolons, colons, tabs
// or slashes and are summed regardless of order. An empty span is 0.
func Parse(span string) (int64, error) {
	if n, err := strconv.ParseInt(strings.TrimSpace(span), 10, 64); err == nil {
		return n, nil
	}

	var total int64

	err := scan(span, func(number string, unit rune) error {
		n, err := strconv.ParseInt(number, 10, 64)
		if err != nil || n > (math.MaxInt64-total)/multipliers[unit] {
			return &ParseError{Span: span, Reason: ErrInvalidNumber, Token: number}
		}

		total += n * multipliers[unit]

		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

// ParseFloat is like Parse but accepts fractional numbers ("1.5h", "0.25").
func ParseFloat(span string) (float64, error) {
	if f, err := strconv.ParseFloat(strings.TrimSpace(span), 64); err == nil {
		return f, nil
	}

	var total float64

	err := scan(span, func(number string, unit rune) error {
		f, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return &ParseError{Span: span, Reason: ErrInvalidNumber, Token: number}
		}

		total += f * float64(multipliers[unit])

		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

// ParseDuration parses the span with ParseFloat and returns it as a time.Duration.
// Spans longer than the largest time.Duration (about 292 years) fail with ErrInvalidNumber.
func ParseDuration(span string) (time.Duration, error) {
	seconds, err := ParseFloat(span)
	if err != nil {
		return 0, err
	}

	nanos := seconds * float64(time.Second)
	if math.IsNaN(nanos) || nanos >= math.MaxInt64 || nanos < math.MinInt64 {
		return 0, &ParseError{Span: span, Reason: ErrInvalidNumber, Token: strings.TrimSpace(span)}
	}

	return time.Duration(nanos), nil
}

func scan(span string, apply func(number string, unit rune) error) error {
	var pending strings.Builder

	for _, symbol := range strings.ToLower(span) {
		switch {
		case isUnit(symbol):
			if pending.Len() == 0 {
				return &ParseError{Span: span, Reason: ErrMissingDigits, Token: string(symbol)}
			}

			err := apply(pending.String(), symbol)
			if err != nil {
				return err
			}

			pending.Reset()
		case isNumeral(symbol):
			pending.WriteRune(symbol)
		case isSeparator(symbol):
		default:
			return &ParseError{Span: span, Reason: ErrUnexpectedSymbol, Token: string(symbol)}
		}
	}

	if pending.Len() > 0 {
		return &ParseError{Span: span, Reason: ErrUnfinishedComponent, Token: pending.String()}
	}

	return nil
}

func isUnit(r rune) bool {
	_, ok := multipliers[r]

	return ok
}

func isNumeral(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

func isSeparator(r rune) bool {
	return strings.ContainsRune(" ,;:\t/", r)
}
