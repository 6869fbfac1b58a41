package layout

import (
	"errors"
	"testing"
)

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		data      string
		mediaType string
		wantErr   bool
	}{
		{"png", "data:image/png;base64,aGVsbG8=", "hello", "image/png", false},
		{"no padding", "data:image/jpeg;base64,aGVsbG8", "hello", "image/jpeg", false},
		{"no media type", "data:;base64,aGVsbG8=", "hello", "", false},
		{"missing comma", "data:image/png;base64aGVsbG8=", "", "", true},
		{"empty payload", "data:image/png;base64,", "", "", true},
		{"not base64", "data:image/png;base64,@@@@", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mediaType, err := DecodeDataURL(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDataURL) {
					t.Fatalf("expected ErrMalformedDataURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.data {
				t.Errorf("data = %q, expected %q", data, tt.data)
			}
			if mediaType != tt.mediaType {
				t.Errorf("media type = %q, expected %q", mediaType, tt.mediaType)
			}
		})
	}
}

func TestEncodeDataURL(t *testing.T) {
	url := EncodeDataURL("image/gif", []byte("hello"))
	if url != "data:image/gif;base64,aGVsbG8=" {
		t.Fatalf("unexpected data url %q", url)
	}
	data, mediaType, err := DecodeDataURL(url)
	if err != nil || string(data) != "hello" || mediaType != "image/gif" {
		t.Fatalf("DecodeDataURL(%q) = %q, %q, %v", url, data, mediaType, err)
	}
}
