package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"
)

func TestDetectContentType(t *testing.T) {
	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"JPEG payload", jpegBuf.Bytes(), "image/jpeg"},
		{"Plain text", []byte("hello world"), "text/plain"},
		{"Empty payload", nil, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectContentType(tt.data)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("got %q, want prefix %q", got, tt.want)
			}
		})
	}
}
