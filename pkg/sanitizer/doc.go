// Package sanitizer provides input normalization for client-supplied data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning a safe fallback rather than errors.
//
// Normalization includes:
//   - Text: Collapse whitespace, trim leading/trailing spaces
//   - Filenames: Reduce to a safe charset with a bounded length
//   - Base64 payloads: Strip data-URI prefixes and embedded whitespace
//   - Slices: Remove duplicates and empty values after normalization
//   - Numbers: Clamp to valid ranges
package sanitizer
