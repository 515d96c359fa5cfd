// Package keys parses and derives storage keys for the
// user/{userId}/{category}/{yyyy}/{mm}/{dd}/{fileName} layout.
package keys
