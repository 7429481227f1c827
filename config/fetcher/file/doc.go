// Package file provides a file-based DataFetcher implementation for the config package.
//
// Data is read either from the operating system (NewFetcher) or from any
// fs.FS such as an embed.FS (NewFSFetcher). The file is read once, at
// construction time, and cached: the configuration document is static for
// the lifetime of the process.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.yaml")()
//	if err != nil {
//	    // file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Construction returns error if file cannot be read or path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
