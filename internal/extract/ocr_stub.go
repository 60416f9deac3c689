//go:build !ocr

package extract

import "context"

// recognizeImages is the stub used when the "ocr" build tag is not set.
func (e *Extractor) recognizeImages(_ context.Context, _ [][]byte) ([]string, error) {
	return nil, ErrOCRNotEnabled
}
