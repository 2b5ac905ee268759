// Package sanitizer normalizes vendor service input before validation and submission.
//
// All normalization functions are idempotent: applying them twice gives the same result
// as applying them once. Invalid input is handled by returning an empty value rather
// than an error, leaving rejection to validation.
//
// Normalization includes:
//   - Names and descriptions: collapse whitespace, trim leading/trailing spaces
//   - Categories: lowercase slug, "Hair & Makeup" becomes "hair_makeup"
//   - Image URLs: enforce HTTPS, lowercase host, drop utm_* tracking parameters
//   - Slices: remove duplicates and empty values after normalization
//   - Prices: round to cents, never negative
package sanitizer
