package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"doclens/internal/models"
)

const (
	callbackMenu         = "menu"
	callbackMenuSettings = "menu_settings"

	analyzeCallbackPrefix        = "analyze_"
	settingsToggleCallbackPrefix = "settings_toggle_"
	settingsToggleUseOCR         = "use_ocr"
	settingsToggleShowRaw        = "show_raw_text"
)

func (b *Bot) sendMessageWithKeyboard(
	chatID int64,
	text string,
	keyboard [][]tgbotapi.InlineKeyboardButton,
) error {
	normalizedText := strings.ToValidUTF8(text, "?")
	if normalizedText != text {
		b.log.Warn("Message text had invalid UTF-8 and was normalized",
			"chatID", chatID,
			"originalLen", len(text),
			"normalizedLen", len(normalizedText))
	}

	message := tgbotapi.NewMessage(chatID, normalizedText)

	// See https://core.telegram.org/bots/api#markdownv2-style.
	message.ParseMode = tgbotapi.ModeMarkdownV2

	message.DisableWebPagePreview = true
	message.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(keyboard...)

	_, err := b.rateLimiter.Send(message)
	return err
}

func getReturnKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData("⬅️ Return to menu", callbackMenu)},
	}
}

func getMenuKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("📝 Summarize", analyzeCallbackPrefix+string(models.CapabilitySummarize)),
			tgbotapi.NewInlineKeyboardButtonData("🏷 Extract entities", analyzeCallbackPrefix+string(models.CapabilityEntities)),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", callbackMenuSettings),
		},
	}
}

func getAnalyzeKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("📝 Summarize", analyzeCallbackPrefix+string(models.CapabilitySummarize)),
			tgbotapi.NewInlineKeyboardButtonData("🏷 Extract entities", analyzeCallbackPrefix+string(models.CapabilityEntities)),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Return to menu", callbackMenu),
		},
	}
}

func getSettingsKeyboard(settings *models.UserSettings) [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData(
				toggleLabel("OCR for scanned PDFs", settings.UseOCR),
				settingsToggleCallbackPrefix+settingsToggleUseOCR,
			),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData(
				toggleLabel("Show raw extracted text", settings.ShowRawText),
				settingsToggleCallbackPrefix+settingsToggleShowRaw,
			),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Return to menu", callbackMenu),
		},
	}
}

func toggleLabel(name string, enabled bool) string {
	if enabled {
		return "✅ " + name
	}

	return "☑️ " + name
}
