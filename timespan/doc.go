// Package timespan parses human-written time spans such as "1d 2h 30m"
// into seconds and formats date stamps used in file names and identifiers.
//
// Usage:
//
//	seconds, err := timespan.Parse("1h30m") // 5400
//	if err != nil {
//	    var parseErr *timespan.ParseError
//	    errors.As(err, &parseErr)
//	}
//
// Errors are always *ParseError values wrapping one of ErrMissingDigits,
// ErrUnexpectedSymbol, ErrUnfinishedComponent or ErrInvalidNumber.
package timespan
