package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"doclens/internal/fetch"
	"doclens/internal/models"
)

const hintText = `✖️ Send me a PDF document, or an https link to a PDF or web page\.`

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	return b.withSpinner(ctx, message.Chat.ID, func() error {
		if message.Document != nil {
			return b.handleDocumentMessage(ctx, message)
		}

		text := strings.TrimSpace(message.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			return b.handleStartCommand(message.Chat.ID)
		case strings.HasPrefix(text, "/menu"):
			return b.handleMenuCommand(message.Chat.ID)
		case strings.HasPrefix(text, "/summarize"):
			return b.handleAnalyzeCommand(ctx, models.CapabilitySummarize, message.Chat.ID, message.From.ID)
		case strings.HasPrefix(text, "/entities"):
			return b.handleAnalyzeCommand(ctx, models.CapabilityEntities, message.Chat.ID, message.From.ID)
		case strings.HasPrefix(text, "/settings"):
			return b.handleSettingsCommand(ctx, message.Chat.ID, message.From.ID)
		default:
			return b.handleRandomText(ctx, text, message.Chat.ID, message.From.ID)
		}
	})
}

// handleRandomText treats any non-command text as a possible document
// link: the first https URL is fetched and routed by content type.
func (b *Bot) handleRandomText(
	ctx context.Context,
	text string,
	chatID int64,
	userID int64,
) error {
	docURL, err := fetch.FindDocumentURL(text)
	if err != nil {
		return fmt.Errorf("find document URL: %w", err)
	}

	if docURL == "" {
		return b.sendMessageWithKeyboard(chatID, hintText, b.menuKeyboard)
	}

	download, err := b.fetcher.Download(ctx, docURL)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to download linked document",
			"error", err,
			"url", docURL,
			"chatID", chatID)

		errs := []error{fmt.Errorf("download document: %w", err)}

		sendErr := b.sendMessageWithKeyboard(
			chatID,
			"❌ Failed to download the linked document\\.",
			b.returnKeyboard,
		)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	if download.IsPDF() {
		return b.processPDF(ctx, chatID, userID, download.FileName, download.URL, download.Data)
	}

	return b.processHTML(ctx, chatID, userID, download)
}

// processHTML builds a session straight from page text; the extractor
// and OCR are PDF-only paths.
func (b *Bot) processHTML(
	ctx context.Context,
	chatID int64,
	userID int64,
	download *fetch.Download,
) error {
	text, err := fetch.HTMLText(download.Data)
	if err != nil || strings.TrimSpace(text) == "" {
		errs := []error{}
		if err != nil {
			errs = append(errs, fmt.Errorf("extract HTML text: %w", err))
		}

		sendErr := b.sendMessageWithKeyboard(
			chatID,
			"✖️ The linked page has no readable text\\.",
			b.returnKeyboard,
		)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	return b.finishExtraction(ctx, chatID, userID, models.DocumentSession{
		FileName: download.FileName,
		Source:   download.URL,
		Text:     text,
	})
}
