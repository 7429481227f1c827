package collection

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var listSeparators = regexp.MustCompile("[;,\n\t]")

// ListOption configures ParseList.
type ListOption func(*listOptions)

type listOptions struct {
	upper   bool
	lower   bool
	noStrip bool
}

// Upper upper-cases every item.
func Upper() ListOption {
	return func(opts *listOptions) {
		opts.upper = true
	}
}

// Lower lower-cases every item. It wins over Upper.
func Lower() ListOption {
	return func(opts *listOptions) {
		opts.lower = true
	}
}

// NoStrip keeps surrounding spaces of the items.
func NoStrip() ListOption {
	return func(opts *listOptions) {
		opts.noStrip = true
	}
}

// ParseList splits text on ';', ',', tabs and newlines. Items are trimmed of
// spaces unless NoStrip is given; empty items are dropped.
func ParseList(text string, opts ...ListOption) []string {
	var options listOptions

	for _, apply := range opts {
		apply(&options)
	}

	parts := listSeparators.Split(text, -1)
	items := make([]string, 0, len(parts))

	for _, item := range parts {
		switch {
		case options.lower:
			item = strings.ToLower(item)
		case options.upper:
			item = strings.ToUpper(item)
		}

		if !options.noStrip {
			item = strings.TrimSpace(item)
		}

		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
