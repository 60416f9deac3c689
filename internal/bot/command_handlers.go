package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doclens/internal/models"
)

const welcomeText = `🤖 *Welcome to Doclens\!*

I analyze documents for you:

– Send me a PDF file, or an https link to a PDF or web page
– I extract its text \(with optional OCR for scanned documents\)
– Then pick an action: 📝 Summarize or 🏷 Extract entities
– Configure OCR and raw\-text echo with /settings

Commands: /menu, /summarize, /entities, /settings`

const settingsText = `*⚙️ Settings*

– *OCR for scanned PDFs* — rasterize pages and recognize text when the PDF has no text layer
– *Show raw extracted text* — echo the extracted text before analysis

Tap a setting to toggle it:`

func (b *Bot) handleStartCommand(chatID int64) error {
	return b.sendMessageWithKeyboard(chatID, welcomeText, b.menuKeyboard)
}

func (b *Bot) handleMenuCommand(chatID int64) error {
	return b.sendMessageWithKeyboard(chatID, "❔ *Choose an option:*", b.menuKeyboard)
}

func (b *Bot) handleSettingsCommand(ctx context.Context, chatID int64, userID int64) error {
	settings, err := b.db.GetUserSettingsWithDefault(ctx, userID)
	if err != nil {
		errs := []error{fmt.Errorf("failed to get user settings with default: %w", err)}

		sendErr := b.sendMessageWithKeyboard(chatID, "❌ Failed\\.", b.returnKeyboard)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("failed to send message with keyboard: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	if err = b.sendMessageWithKeyboard(
		chatID,
		settingsText,
		getSettingsKeyboard(settings),
	); err != nil {
		return fmt.Errorf("failed to send message with keyboard: %w", err)
	}

	return nil
}

// handleAnalyzeCommand runs one analysis action over the chat's current
// document session.
func (b *Bot) handleAnalyzeCommand(
	ctx context.Context,
	capability models.Capability,
	chatID int64,
	userID int64,
) error {
	docSession, ok := b.sessions.Get(chatID, time.Now().UTC())
	if !ok {
		return b.sendMessageWithKeyboard(
			chatID,
			"✖️ No document is loaded\\. Send me a PDF first\\.",
			b.returnKeyboard,
		)
	}

	result, err := b.orchestrator.Run(ctx, capability, docSession.Text)
	if err != nil {
		b.log.WarnContext(ctx, "Analysis failed",
			"error", err,
			"capability", string(capability),
			"chatID", chatID,
			"userID", userID,
			"textLen", len(docSession.Text))

		return b.sendMessageWithKeyboard(chatID, describeAnalysisError(err), b.returnKeyboard)
	}

	var messages []string
	switch capability {
	case models.CapabilitySummarize:
		messages = formatSummaryMessages(result.Summary)
	case models.CapabilityEntities:
		messages = formatEntityMessages(result.Entities)
	}

	var errs []error
	for _, message := range messages {
		if err = b.sendMessageWithKeyboard(chatID, message, b.analyzeKeyboard); err != nil {
			errs = append(errs, fmt.Errorf("send message with keyboard: %w", err))
		}
	}

	return errors.Join(errs...)
}
