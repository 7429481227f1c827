package blobstore

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Codec encodes stored values.
type Codec interface {
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte, target any) error
	// Ext is the file extension used by FileStore, dot included.
	Ext() string
}

// JSONCodec encodes values as JSON.
type JSONCodec struct{}

func (JSONCodec) Marshal(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}

	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, target any) error {
	err := json.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

func (JSONCodec) Ext() string { return ".json" }

// YAMLCodec encodes values as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Marshal(value any) ([]byte, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}

	return data, nil
}

func (YAMLCodec) Unmarshal(data []byte, target any) error {
	err := yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("yaml decode: %w", err)
	}

	return nil
}

func (YAMLCodec) Ext() string { return ".yaml" }
