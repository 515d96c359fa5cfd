package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koxtuichi/photo-upload-s3-app/internal/mediatypes"
)

// PathFormatError reports a storage key that does not follow the
// user/{userId}/{category}/{yyyy}/{mm}/{dd}/{fileName} convention.
type PathFormatError struct {
	Key    string
	Reason string
}

func (e *PathFormatError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Key, e.Reason)
}

// SourcePath is the parsed form of a source object key. It is derived
// once per object and immutable afterwards.
type SourcePath struct {
	UserID   string
	Category mediatypes.Category
	Year     int
	Month    int
	Day      int
	FileName string
}

// DestinationPath mirrors a SourcePath with the category mapped to its
// thumbnail category and the file name rewritten to <stem>_thumb.jpg.
type DestinationPath struct {
	UserID   string
	Category mediatypes.Category
	Year     int
	Month    int
	Day      int
	FileName string
}

// Parse splits a storage key into its SourcePath.
//
// The key must have at least 7 slash-separated segments, lead with
// "user", carry a known category segment, and have all-digit
// year/month/day segments. One- or two-digit month/day are accepted;
// they render zero-padded on output.
func Parse(key string) (SourcePath, error) {
	parts := strings.Split(key, "/")
	if len(parts) < 7 {
		return SourcePath{}, &PathFormatError{Key: key, Reason: fmt.Sprintf("expected at least 7 segments, got %d", len(parts))}
	}
	if parts[0] != "user" {
		return SourcePath{}, &PathFormatError{Key: key, Reason: "missing leading user segment"}
	}

	userID := parts[1]
	if userID == "" {
		return SourcePath{}, &PathFormatError{Key: key, Reason: "empty user id"}
	}

	category := mediatypes.CategoryForDir(parts[2])
	if category == mediatypes.CategoryUnknown {
		return SourcePath{}, &PathFormatError{Key: key, Reason: fmt.Sprintf("unknown category %q", parts[2])}
	}

	year, month, day := parts[3], parts[4], parts[5]
	for _, seg := range []string{year, month, day} {
		if !allDigits(seg) {
			return SourcePath{}, &PathFormatError{Key: key, Reason: fmt.Sprintf("non-numeric date segment %q", seg)}
		}
	}

	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	fileName := parts[len(parts)-1]
	if fileName == "" {
		return SourcePath{}, &PathFormatError{Key: key, Reason: "empty file name"}
	}

	return SourcePath{
		UserID:   userID,
		Category: category,
		Year:     y,
		Month:    m,
		Day:      d,
		FileName: fileName,
	}, nil
}

// Destination derives the mirrored thumbnail path. The source
// extension is always replaced with _thumb.jpg.
func (p SourcePath) Destination() (DestinationPath, error) {
	thumbCategory, ok := mediatypes.ThumbnailCategory(p.Category)
	if !ok {
		return DestinationPath{}, &PathFormatError{Key: p.Key(), Reason: fmt.Sprintf("category %q has no thumbnail mapping", p.Category)}
	}

	stem := p.FileName
	if ext := mediatypes.Ext(p.FileName); ext != "" {
		// Strip the extension whatever casing the key used.
		stem = p.FileName[:len(p.FileName)-len(ext)]
	}

	return DestinationPath{
		UserID:   p.UserID,
		Category: thumbCategory,
		Year:     p.Year,
		Month:    p.Month,
		Day:      p.Day,
		FileName: stem + "_thumb.jpg",
	}, nil
}

// Key renders the canonical storage key with zero-padded month/day.
func (p SourcePath) Key() string {
	return renderKey(p.UserID, p.Category, p.Year, p.Month, p.Day, p.FileName)
}

// Key renders the canonical storage key with zero-padded month/day.
func (p DestinationPath) Key() string {
	return renderKey(p.UserID, p.Category, p.Year, p.Month, p.Day, p.FileName)
}

func renderKey(userID string, category mediatypes.Category, year, month, day int, fileName string) string {
	return fmt.Sprintf("user/%s/%s/%d/%02d/%02d/%s", userID, category, year, month, day, fileName)
}

// UserIDFromKey extracts the owning user id from any key under the
// user/ prefix, without requiring the full 7-segment convention.
func UserIDFromKey(key string) (string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) > 2 && parts[0] == "user" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
