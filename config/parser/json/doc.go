// Package json provides a JSON parser implementation for the config package.
//
// Navigation uses github.com/bitly/go-simplejson, so the document is decoded
// once and the requested section is re-encoded only when the target is a
// concrete type. Paths use the same dotted form as the YAML parser.
//
// Usage:
//
//	parser := json.NewParser()
//	var document any
//	err := parser.Parse(data, &document, "")
package json
