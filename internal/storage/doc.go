// Package storage is the S3 boundary: downloads of uploaded photos,
// uploads of derived thumbnails and restore archives, and presigned
// download links.
package storage
