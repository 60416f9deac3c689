package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"doclens/internal/fetch"
	"doclens/internal/models"
)

func (b *Bot) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) error {
	doc := message.Document
	chatID := message.Chat.ID

	if doc.FileSize > fetch.MaxDownloadBytes {
		return b.sendMessageWithKeyboard(
			chatID,
			"✖️ This document is too large\\. The limit is 20 MB\\.",
			b.returnKeyboard,
		)
	}

	if !looksLikePDF(doc) {
		return b.sendMessageWithKeyboard(
			chatID,
			"✖️ Only PDF documents are supported\\. Send a `.pdf` file\\.",
			b.returnKeyboard,
		)
	}

	fileURL, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		errs := []error{fmt.Errorf("get file URL: %w", err)}

		sendErr := b.sendMessageWithKeyboard(chatID, "❌ Failed to fetch this document\\.", b.returnKeyboard)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	download, err := b.fetcher.Download(ctx, fileURL)
	if err != nil {
		errs := []error{fmt.Errorf("download document: %w", err)}

		sendErr := b.sendMessageWithKeyboard(chatID, "❌ Failed to fetch this document\\.", b.returnKeyboard)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	return b.processPDF(ctx, chatID, message.From.ID, doc.FileName, "", download.Data)
}

func looksLikePDF(doc *tgbotapi.Document) bool {
	if strings.Contains(strings.ToLower(doc.MimeType), "application/pdf") {
		return true
	}

	return strings.HasSuffix(strings.ToLower(doc.FileName), ".pdf")
}

// processPDF extracts text with the user's OCR preference and opens an
// analysis session for the chat. Extraction failures become chat
// messages; the error return carries only send failures.
func (b *Bot) processPDF(
	ctx context.Context,
	chatID int64,
	userID int64,
	fileName string,
	source string,
	data []byte,
) error {
	settings, err := b.db.GetUserSettingsWithDefault(ctx, userID)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to get user settings, using defaults",
			"error", err,
			"userID", userID)

		settings = &models.UserSettings{UserID: userID}
	}

	result, err := b.extractor.Extract(ctx, data, settings.UseOCR)
	if err != nil {
		b.log.WarnContext(ctx, "Extraction failed",
			"error", err,
			"chatID", chatID,
			"fileName", fileName,
			"useOCR", settings.UseOCR,
			"sizeBytes", len(data))

		return b.sendMessageWithKeyboard(chatID, describeExtractError(err), b.returnKeyboard)
	}

	return b.finishExtraction(ctx, chatID, userID, models.DocumentSession{
		FileName: fileName,
		Source:   source,
		Text:     result.Text,
		Pages:    result.Pages,
		UsedOCR:  result.UsedOCR,
	})
}

// finishExtraction stores the session and offers the analysis actions,
// echoing the raw text first when the user asked for it.
func (b *Bot) finishExtraction(
	ctx context.Context,
	chatID int64,
	userID int64,
	docSession models.DocumentSession,
) error {
	b.sessions.Put(chatID, docSession, time.Now().UTC())

	b.log.InfoContext(ctx, "Document session is opened",
		"chatID", chatID,
		"fileName", docSession.FileName,
		"source", docSession.Source,
		"pages", docSession.Pages,
		"usedOCR", docSession.UsedOCR,
		"textLen", len(docSession.Text))

	var errs []error

	settings, err := b.db.GetUserSettingsWithDefault(ctx, userID)
	if err != nil {
		errs = append(errs, fmt.Errorf("get user settings: %w", err))
		settings = &models.UserSettings{UserID: userID}
	}

	if settings.ShowRawText {
		for _, message := range formatRawTextMessages(docSession.Text) {
			if err = b.sendMessageWithKeyboard(chatID, message, b.returnKeyboard); err != nil {
				errs = append(errs, fmt.Errorf("send message with keyboard: %w", err))
			}
		}
	}

	if err = b.sendMessageWithKeyboard(
		chatID,
		formatExtractionNotice(&docSession),
		b.analyzeKeyboard,
	); err != nil {
		errs = append(errs, fmt.Errorf("send message with keyboard: %w", err))
	}

	return errors.Join(errs...)
}
