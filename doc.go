// Package helpers is the application shell shared by services built on this
// module: it wires the process logger and, optionally, the configuration
// document into an Fx container.
//
// The supporting packages can be used on their own:
//
//   - config: dotted-path access to YAML and JSON configuration documents
//   - timespan: "1h 30m" style durations and date stamps
//   - logging: slog setup
//   - retry, cache, blobstore, download, collection, ident: small utilities
package helpers
