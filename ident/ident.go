// Package ident generates opaque identifiers.
package ident

import (
	"crypto/md5" //nolint:gosec // identifiers, not security
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/0xalexb/hjarta-helpers/timespan"
)

// DefaultHexBytes is the number of random bytes used by callers without a preference.
const DefaultHexBytes = 12

// RandomHex returns n random bytes as 2n lowercase hex characters.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)

	_, err := rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Unique returns an identifier that is stable for the same args within the
// current period of the given precision (a day, an hour, ...) and changes
// when the period ends.
func Unique(prec timespan.Precision, args ...any) string {
	return UniqueAt(time.Now(), prec, args...)
}

// UniqueAt is Unique for the period containing t.
func UniqueAt(t time.Time, prec timespan.Precision, args ...any) string {
	var builder strings.Builder

	builder.WriteString(timespan.Stamp(t, prec))

	for _, arg := range args {
		fmt.Fprint(&builder, arg)
	}

	sum := md5.Sum([]byte(builder.String())) //nolint:gosec // identifiers, not security

	return hex.EncodeToString(sum[:])
}
