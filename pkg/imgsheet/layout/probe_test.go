package layout

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestProbe_PNG(t *testing.T) {
	info, err := Probe(pngBytes(t, 8, 4))
	require.NoError(t, err)
	assert.Equal(t, ImageInfo{Format: "png", Width: 8, Height: 4}, info)
}

func TestProbe_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 5))))

	info, err := Probe(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "bmp", info.Format)
	assert.Equal(t, 3, info.Width)
	assert.Equal(t, 5, info.Height)
}

func TestProbe_Garbage(t *testing.T) {
	_, err := Probe([]byte("not an image"))
	assert.ErrorIs(t, err, ErrUnreadableImage)
}
