// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support. The parser converts dotted paths (e.g., "api.permissions",
// "servers.0.host") to YAML path format (e.g., "$.api.permissions",
// "$.servers[0].host") internally.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var document any
//	err := parser.Parse(data, &document, "")
//
// Path Conversion:
//   - Empty path "" -> unmarshal entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api.permissions" -> "$.api.permissions"
//   - Numeric component "hosts.1" -> "$.hosts[1]"
package yaml
