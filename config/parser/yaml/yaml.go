package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser interface for YAML data.
// It uses goccy/go-yaml PathString for path navigation.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter is a dotted navigation path ("servers.0.host"); numeric
// components address sequence items, negative ones counting from the end.
// Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	if hasNegativeIndex(path) {
		return p.parseWalking(data, target, path)
	}

	yamlPath := convertToYAMLPath(path)

	pathObj, err := yaml.PathString(yamlPath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath converts a dotted path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api.permissions" -> "$.api.permissions"
//   - "servers.0.host" -> "$.servers[0].host"
func convertToYAMLPath(path string) string {
	var builder strings.Builder

	builder.WriteString("$")

	for _, component := range strings.Split(path, ".") {
		component = strings.TrimSpace(component)

		if index, err := strconv.Atoi(component); err == nil && index >= 0 {
			builder.WriteString("[" + component + "]")

			continue
		}

		builder.WriteString("." + component)
	}

	return builder.String()
}

// parseWalking resolves paths YAMLPath cannot express (negative indices) by
// walking the decoded document, then re-encodes the node into target.
func (p *Parser) parseWalking(data []byte, target any, path string) error {
	var node any

	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	for _, component := range strings.Split(path, ".") {
		component = strings.TrimSpace(component)

		var ok bool

		switch typed := node.(type) {
		case map[string]any:
			node, ok = typed[component]
		case []any:
			index, convErr := strconv.Atoi(component)
			if convErr == nil && index < 0 {
				index += len(typed)
			}

			ok = convErr == nil && index >= 0 && index < len(typed)
			if ok {
				node = typed[index]
			}
		}

		if !ok {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	encoded, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.Unmarshal(encoded, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

func hasNegativeIndex(path string) bool {
	for _, component := range strings.Split(path, ".") {
		if index, err := strconv.Atoi(strings.TrimSpace(component)); err == nil && index < 0 {
			return true
		}
	}

	return false
}
