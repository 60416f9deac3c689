package bot

import (
	"errors"
	"fmt"
	"strings"

	"doclens/internal/analysis"
	"doclens/internal/extract"
	"doclens/internal/markdown"
	"doclens/internal/models"
)

const (
	telegramMessageMaxLength = 4096

	// Plain-text lines are hard-split to this many runes before escaping;
	// escaping at worst doubles the length, which still fits under the
	// Telegram cap together with a header.
	maxPlainLineRunes = 1800
)

// buildMessages renders plain body text under an escaped MarkdownV2
// header, splitting into as many messages as the Telegram length cap
// requires. Body lines are escaped here; the header must come escaped.
func buildMessages(header string, continuedHeader string, body string) []string {
	var messages []string
	var current strings.Builder

	current.WriteString(header)
	headerLength := current.Len()

	for _, line := range strings.Split(body, "\n") {
		for _, piece := range splitLongLine(line, maxPlainLineRunes) {
			escaped := markdown.EscapeV2(piece)

			if current.Len()+len(escaped)+1 > telegramMessageMaxLength {
				messages = append(messages, current.String())
				current.Reset()
				current.WriteString(continuedHeader)
			}

			current.WriteString(escaped)
			current.WriteString("\n")
		}
	}

	if current.Len() > headerLength || len(messages) == 0 {
		messages = append(messages, strings.TrimRight(current.String(), "\n"))
	}

	return messages
}

func splitLongLine(line string, maxRunes int) []string {
	runes := []rune(line)
	if len(runes) <= maxRunes {
		return []string{line}
	}

	var pieces []string
	for start := 0; start < len(runes); start += maxRunes {
		end := min(start+maxRunes, len(runes))
		pieces = append(pieces, string(runes[start:end]))
	}

	return pieces
}

func formatSummaryMessages(summary string) []string {
	return buildMessages(
		"📝 *Summary*\n\n",
		"📝 *Summary \\(continue\\)*\n\n",
		summary,
	)
}

func formatEntityMessages(entities []models.Entity) []string {
	if len(entities) == 0 {
		return []string{"✖️ No entities were found in this document\\."}
	}

	var body strings.Builder
	for _, e := range entities {
		body.WriteString(fmt.Sprintf("– [%s] %s (%.2f)\n", e.Label, e.Text, e.Score))
	}

	return buildMessages(
		"🏷 *Named entities*\n\n",
		"🏷 *Named entities \\(continue\\)*\n\n",
		strings.TrimRight(body.String(), "\n"),
	)
}

func formatRawTextMessages(text string) []string {
	return buildMessages(
		"📄 *Extracted text*\n\n",
		"📄 *Extracted text \\(continue\\)*\n\n",
		text,
	)
}

func formatExtractionNotice(session *models.DocumentSession) string {
	name := strings.TrimSpace(session.FileName)
	if name == "" {
		name = strings.TrimSpace(session.Source)
	}
	if name == "" {
		name = "document"
	}

	notice := fmt.Sprintf(
		"📑 Extracted %d characters from %s",
		len([]rune(session.Text)),
		name,
	)
	if session.Pages > 0 {
		notice += fmt.Sprintf(" (%d pages)", session.Pages)
	}
	if session.UsedOCR {
		notice += " via OCR"
	}
	notice += ". Choose an analysis:"

	return markdown.EscapeV2(notice)
}

// describeExtractError maps extraction failures onto instructions for
// the user. Every failure stays a chat message, never a crash.
func describeExtractError(err error) string {
	switch {
	case errors.Is(err, extract.ErrNoExtractableText):
		return "✖️ No extractable text found\\. Try enabling OCR in settings\\."
	case errors.Is(err, extract.ErrOCRNotEnabled):
		return "✖️ OCR support is not available in this build\\. " +
			"Rebuild with `-tags ocr` and install Tesseract\\."
	default:
		return "❌ Failed to extract text from this document\\."
	}
}

func describeAnalysisError(err error) string {
	var unavailable *analysis.UnavailableError

	switch {
	case errors.As(err, &unavailable):
		return "✖️ No analysis backend is configured\\. " +
			"Set OPENAI\\_API\\_KEY or enable LOCAL\\_ANALYSIS\\."
	case errors.Is(err, analysis.ErrEmptyText):
		return "✖️ There is no extracted text to analyze\\."
	default:
		return "❌ Analysis failed\\. Try again later\\."
	}
}
