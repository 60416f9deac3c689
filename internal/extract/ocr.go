//go:build ocr

package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// recognizeImages runs Tesseract over each page image independently and
// returns the recognized text in page order.
func (e *Extractor) recognizeImages(ctx context.Context, images [][]byte) ([]string, error) {
	client := gosseract.NewClient()
	defer func() {
		if err := client.Close(); err != nil {
			e.log.WarnContext(ctx, "Failed to close OCR client",
				"error", err)
		}
	}()

	if err := client.SetLanguage(e.ocrLanguage); err != nil {
		return nil, fmt.Errorf("set OCR language %q: %w", e.ocrLanguage, err)
	}

	texts := make([]string, 0, len(images))
	for i, img := range images {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if err := client.SetImageFromBytes(img); err != nil {
			return nil, fmt.Errorf("set image %d: %w", i, err)
		}

		text, err := client.Text()
		if err != nil {
			return nil, fmt.Errorf("recognize image %d: %w", i, err)
		}

		texts = append(texts, text)
	}

	return texts, nil
}
