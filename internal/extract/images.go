package extract

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageImages pulls the raw embedded images out of every page, in page
// order. Scanned PDFs carry one full-page image per page, which is what
// the OCR fallback feeds to Tesseract.
func pageImages(data []byte) ([][]byte, error) {
	conf := model.NewDefaultConfiguration()

	extracted, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, conf)
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	var images [][]byte
	for _, pageObjs := range extracted {
		for _, objNr := range slices.Sorted(maps.Keys(pageObjs)) {
			img := pageObjs[objNr]

			raw, readErr := io.ReadAll(img)
			if readErr != nil {
				return nil, fmt.Errorf("read image object %d: %w", objNr, readErr)
			}
			if len(raw) == 0 {
				continue
			}

			images = append(images, raw)
		}
	}

	return images, nil
}
