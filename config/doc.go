// Package config provides a read-only, path-addressable view over a
// structured configuration document, and the loader that produces it.
//
// # Documents and views
//
// A document is a tree of mappings (map[string]any), sequences ([]any) and
// scalars, normalized once at load time (see Normalize and Kind). A View is a
// window over one subtree:
//
//	port, err := view.GetInt("server.port")
//	hosts, err := view.GetList("server.hosts")
//	timeout := view.GetOr("server.timeout", "30s")
//	first, err := view.Get("server.hosts.0")
//
// Get wraps mappings and sequences in a *View and returns scalars as they
// are. The ...Or variants return the given default verbatim whenever the path
// cannot be resolved. Lookup failures wrap ErrNotFound, conversion failures
// wrap ErrTypeCoercion.
//
// Fluent navigation never fails half-way; the first error is kept and
// reported by the terminal call:
//
//	seconds, err := view.Key("cache").Key("ttl").Seconds()
//
// # Loading
//
// Load reads the environment side-file (.env), then picks the document from
// WithData, WithName, the first process argument or DefaultName, parses it
// with the YAML or JSON parser and returns the root View. There is no global
// instance: the caller owns the View and passes it on, directly or through
// Module in an Fx application.
//
// # Typed sections
//
// Provider decodes a section into a struct, applies Defaulter and runs
// Validator:
//
//	type APIConfig struct {
//	    Timeout time.Duration `yaml:"timeout"`
//	    BaseURL string        `yaml:"base_url"`
//	}
//
//	cfg, err := config.Provider(&APIConfig{}, "services.api")(view)
package config
