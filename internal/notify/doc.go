// Package notify handles Glacier restore completions: when archived
// originals come back online it emails the owning user presigned
// download links, bundling multi-file restores into a short-lived zip
// archive.
package notify
