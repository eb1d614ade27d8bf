// Package utils contains small internal helpers shared across the module:
// a JSON-over-HTTP POST helper used by completion providers and string
// truncation utilities for log output.
package utils
