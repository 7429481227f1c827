package timespan

import "time"

// LongAgo is a timestamp safely before any event the application tracks.
//
//nolint:gochecknoglobals // constant-like value.
var LongAgo = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Precision selects how much of a timestamp Stamp keeps.
type Precision string

// Supported precisions. Any other value formats with full precision.
const (
	PrecisionDay    Precision = "day"
	PrecisionHour   Precision = "hour"
	PrecisionMinute Precision = "minute"
	PrecisionFull   Precision = "full"
)

// Stamp formats t as "02-01-2006--15-04-05", truncated to the given precision.
func Stamp(t time.Time, prec Precision) string {
	switch prec {
	case PrecisionDay:
		return t.Format("02-01-2006")
	case PrecisionHour:
		return t.Format("02-01-2006--15")
	case PrecisionMinute:
		return t.Format("02-01-2006--15-04")
	case PrecisionFull:
		fallthrough
	default:
		return t.Format("02-01-2006--15-04-05")
	}
}

// Today is Stamp applied to the current local time.
func Today(prec Precision) string {
	return Stamp(time.Now(), prec)
}
