// Package handler adapts S3 event notifications to the thumbnail
// pipeline: record filtering, key decoding, object transfer, and the
// batch response status.
package handler
