package layout

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDataURL indicates a data URL without a base64 payload.
var ErrMalformedDataURL = errors.New("malformed data url")

// DecodeDataURL splits a "data:<media type>;base64,<payload>" string and
// decodes the payload. The media type is empty when the header carries none.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing ',' separator", ErrMalformedDataURL)
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", fmt.Errorf("%w: empty payload", ErrMalformedDataURL)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some encoders drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformedDataURL, err)
		}
	}

	mediaType := strings.TrimPrefix(header, "data:")
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	return data, mediaType, nil
}

// EncodeDataURL builds a base64 data URL for the given payload.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
