// Package extract turns uploaded PDF bytes into plain text.
//
// Direct extraction reads the text layer with ledongthuc/pdf. When a
// document has no text layer (scans), the OCR fallback rasterized-image
// path recognizes embedded page images with Tesseract. OCR support is
// compiled in behind the "ocr" build tag:
//
//	go build -tags ocr
//
// which requires a system Tesseract installation.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNoExtractableText means the PDF parsed fine but yielded no text
	// and OCR was not requested.
	ErrNoExtractableText = errors.New("no extractable text found")

	// ErrOCRNotEnabled is returned when OCR is requested but support was
	// not compiled in. Rebuild with -tags ocr to enable it.
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
)

// Result is the outcome of one extraction attempt.
type Result struct {
	Text    string
	Pages   int
	UsedOCR bool
}

type Extractor struct {
	ocrLanguage string
	log         *slog.Logger
}

func New(ocrLanguage string, log *slog.Logger) *Extractor {
	ocrLanguage = strings.TrimSpace(ocrLanguage)
	if ocrLanguage == "" {
		ocrLanguage = "eng"
	}

	return &Extractor{
		ocrLanguage: ocrLanguage,
		log:         log,
	}
}

// Extract produces the plain text of a PDF. Direct extraction is tried
// first; OCR runs only when the text layer is empty and useOCR is set.
// Every failure comes back as an error value, never a panic, so a broken
// upload cannot take the process down.
func (e *Extractor) Extract(ctx context.Context, data []byte, useOCR bool) (Result, error) {
	pages, pageCount, err := directText(data)
	if err != nil {
		return Result{}, fmt.Errorf("extract text: %w", err)
	}

	text := joinPages(pages)
	if text != "" {
		return Result{Text: text, Pages: pageCount}, nil
	}

	if !useOCR {
		return Result{}, ErrNoExtractableText
	}

	images, err := pageImages(data)
	if err != nil {
		return Result{}, fmt.Errorf("extract page images: %w", err)
	}
	if len(images) == 0 {
		return Result{}, ErrNoExtractableText
	}

	e.log.InfoContext(ctx, "Falling back to OCR",
		"pageCount", pageCount,
		"imageCount", len(images),
		"language", e.ocrLanguage)

	ocrPages, err := e.recognizeImages(ctx, images)
	if err != nil {
		return Result{}, fmt.Errorf("recognize page images: %w", err)
	}

	text = joinPages(ocrPages)
	if text == "" {
		return Result{}, ErrNoExtractableText
	}

	return Result{Text: text, Pages: pageCount, UsedOCR: true}, nil
}

// directText reads the text layer page by page, in document order. A page
// that yields no text contributes an empty string so page numbering stays
// aligned. The parser is known to panic on some malformed inputs, hence
// the recover guard.
func directText(data []byte) (pages []string, pageCount int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			pageCount = 0
			err = fmt.Errorf("PDF parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("open PDF: %w", err)
	}

	pageCount = reader.NumPage()
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pageText, textErr := page.GetPlainText(nil)
		if textErr != nil {
			pages = append(pages, "")
			continue
		}

		pages = append(pages, strings.TrimSpace(pageText))
	}

	return pages, pageCount, nil
}

func joinPages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, "\n"))
}
