package mediatypes

import "testing"

func TestIsRawExt(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".arw", true},
		{".cr2", true},
		{".CR3", true},
		{".dng", true},
		{".x3f", true},
		{".tiff", true},
		{".tif", true},
		{".RAF", true},
		{".jpg", false},
		{".png", false},
		{".mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := IsRawExt(tt.ext); got != tt.expected {
				t.Errorf("IsRawExt(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestIsJpegExt(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".jpg", true},
		{".jpeg", true},
		{".JPG", true},
		{".JPEG", true},
		{".jpe", false},
		{".png", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := IsJpegExt(tt.ext); got != tt.expected {
				t.Errorf("IsJpegExt(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestRawExtensionCount(t *testing.T) {
	// The recognized RAW set is fixed at 26 extensions.
	if len(RawExtensions) != 26 {
		t.Errorf("len(RawExtensions) = %d, want 26", len(RawExtensions))
	}
}

func TestTiffExtsAreRawExts(t *testing.T) {
	for ext := range TiffExtensions {
		if !RawExtensions[ext] {
			t.Errorf("TIFF extension %s should also be in RawExtensions", ext)
		}
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"IMG_01.CR2", ".cr2"},
		{"photo.JPG", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ext(tt.name); got != tt.expected {
				t.Errorf("Ext(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestCategoryForDir(t *testing.T) {
	tests := []struct {
		segment  string
		expected Category
	}{
		{"raw", CategoryRaw},
		{"jpg", CategoryJpeg},
		{"rawThumbnail", CategoryRawThumbnail},
		{"jpgThumbnail", CategoryJpegThumbnail},
		{"video", CategoryUnknown},
		{"RAW", CategoryUnknown}, // category segments are case-sensitive
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			if got := CategoryForDir(tt.segment); got != tt.expected {
				t.Errorf("CategoryForDir(%q) = %q, want %q", tt.segment, got, tt.expected)
			}
		})
	}
}

func TestThumbnailCategory(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		expected Category
		ok       bool
	}{
		{"raw maps to rawThumbnail", CategoryRaw, CategoryRawThumbnail, true},
		{"jpg maps to jpgThumbnail", CategoryJpeg, CategoryJpegThumbnail, true},
		{"thumbnail category has no mapping", CategoryRawThumbnail, CategoryUnknown, false},
		{"unknown has no mapping", CategoryUnknown, CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ThumbnailCategory(tt.category)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ThumbnailCategory(%q) = (%q, %v), want (%q, %v)",
					tt.category, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestIsThumbnailCategory(t *testing.T) {
	if !IsThumbnailCategory(CategoryRawThumbnail) || !IsThumbnailCategory(CategoryJpegThumbnail) {
		t.Error("thumbnail categories should report true")
	}
	if IsThumbnailCategory(CategoryRaw) || IsThumbnailCategory(CategoryJpeg) {
		t.Error("source categories should report false")
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
	}{
		{".jpg", "image/jpeg"},
		{".jpeg", "image/jpeg"},
		{".tif", "image/tiff"},
		{".cr2", "image/x-canon-cr2"},
		{".xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetMimeType(tt.ext); got != tt.expected {
				t.Errorf("GetMimeType(%q) = %q, want %q", tt.ext, got, tt.expected)
			}
		})
	}
}
