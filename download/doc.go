// Package download streams HTTP resources to local files.
package download
