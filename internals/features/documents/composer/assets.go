package composer

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// pixel budget for fitted images; generous for the small boxes they fill
const (
	logoBoxPx  = 240
	photoBoxPx = 360
)

// prepareImage decodes jpeg/png/webp bytes, fits them inside the box and
// re-encodes as JPEG (the one inline encoding the PDF embedder takes from
// us). Undecodable bytes report ok=false and the caller draws a placeholder.
func prepareImage(data []byte, maxW, maxH int) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		img, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, false
		}
	}

	fitted := imaging.Fit(img, maxW, maxH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func loadLogo(path string, maxW, maxH int) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return prepareImage(data, maxW, maxH)
}
