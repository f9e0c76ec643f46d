package editor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG builds a PNG payload of the given size in memory.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeLogo(t *testing.T) {
	dataURI, err := EncodeLogo(testPNG(t, 40, 20))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURI, "data:image/png;base64,"))

	raw, err := DecodeLogo(dataURI)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestEncodeLogoDownscalesTallImages(t *testing.T) {
	dataURI, err := EncodeLogo(testPNG(t, 100, 1000))
	require.NoError(t, err)

	raw, err := DecodeLogo(dataURI)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, maxLogoHeight, img.Bounds().Dy())
	assert.Equal(t, 24, img.Bounds().Dx(), "aspect ratio must be preserved")
}

func TestEncodeLogoRejectsGarbage(t *testing.T) {
	_, err := EncodeLogo([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestDecodeLogoRejectsNonDataURI(t *testing.T) {
	_, err := DecodeLogo("https://example.com/logo.png")
	assert.Error(t, err)

	_, err = DecodeLogo("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}
