package editor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// maxLogoHeight caps the embedded logo. Uploads taller than this are scaled
// down preserving aspect ratio before being inlined, keeping the stored
// document (and every subsequent save) reasonably small.
const maxLogoHeight = 240

// EncodeLogo converts an uploaded image payload into a self-contained PNG
// data URI suitable for storing inline on the document.
func EncodeLogo(payload []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to decode logo image: %w", err)
	}

	if img.Bounds().Dy() > maxLogoHeight {
		// Width 0 lets imaging preserve the aspect ratio.
		img = imaging.Resize(img, 0, maxLogoHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode logo image: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeLogo returns the raw image bytes of a data URI produced by
// EncodeLogo (or carried in an imported document). Used by the PDF renderer
// to embed the logo.
func DecodeLogo(dataURI string) ([]byte, error) {
	_, encoded, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return nil, fmt.Errorf("logo is not a base64 data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo data URI: %w", err)
	}
	return raw, nil
}
