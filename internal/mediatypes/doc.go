// Package mediatypes classifies object keys and file extensions for the
// photo upload layout: which extensions are camera RAW vs JPEG, which
// key directory segment maps to which storage category, and how source
// categories map to their thumbnail categories.
package mediatypes
