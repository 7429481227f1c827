package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	simple "github.com/bitly/go-simplejson"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the JSON document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser interface for JSON data.
// It navigates the document with go-simplejson before decoding the target.
type Parser struct{}

// NewParser creates a new JSON parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses JSON data and decodes the node under path into the target.
// The path is dotted ("servers.0.host"); numeric components index arrays,
// negative ones counting from the end.
// Numbers decoded into an `any` target are json.Number values.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	document, err := simple.NewJson(data)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	node, err := navigate(document, path)
	if err != nil {
		return err
	}

	if ptr, ok := target.(*any); ok {
		*ptr = node.Interface()

		return nil
	}

	encoded, err := node.MarshalJSON()
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = stdjson.Unmarshal(encoded, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

func navigate(document *simple.Json, path string) (*simple.Json, error) {
	if path == "" {
		return document, nil
	}

	node := document

	for _, component := range strings.Split(path, ".") {
		component = strings.TrimSpace(component)

		if items, err := node.Array(); err == nil {
			index, err := strconv.Atoi(component)
			if err == nil && index < 0 {
				index += len(items)
			}

			if err != nil || index < 0 || index >= len(items) {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
			}

			node = node.GetIndex(index)

			continue
		}

		next, ok := node.CheckGet(component)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		node = next
	}

	return node, nil
}
