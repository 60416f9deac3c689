package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"doclens/internal/models"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	return b.withSpinner(ctx, callback.Message.Chat.ID, func() error {
		data := strings.TrimSpace(callback.Data)

		switch data {
		case callbackMenu:
			return b.withEmptyCallbackAnswer(callback, func() error {
				return b.handleMenuCommand(callback.Message.Chat.ID)
			})
		case callbackMenuSettings:
			return b.withEmptyCallbackAnswer(callback, func() error {
				return b.handleSettingsCommand(ctx, callback.Message.Chat.ID, callback.From.ID)
			})
		}

		if capabilityStr, ok := strings.CutPrefix(data, analyzeCallbackPrefix); ok {
			return b.withEmptyCallbackAnswer(callback, func() error {
				return b.handleAnalyzeCommand(
					ctx,
					models.Capability(strings.TrimSpace(capabilityStr)),
					callback.Message.Chat.ID,
					callback.From.ID,
				)
			})
		}

		if settingKey, ok := strings.CutPrefix(data, settingsToggleCallbackPrefix); ok {
			return b.handleSettingsToggleQuery(ctx, strings.TrimSpace(settingKey), callback)
		}

		return nil
	})
}

func (b *Bot) handleSettingsToggleQuery(
	ctx context.Context,
	settingKey string,
	callback *tgbotapi.CallbackQuery,
) error {
	settings, err := b.db.GetUserSettingsWithDefault(ctx, callback.From.ID)
	if err != nil {
		return b.errorCallbackAnswer(callback, fmt.Errorf("get user settings: %w", err))
	}

	switch settingKey {
	case settingsToggleUseOCR:
		settings.UseOCR = !settings.UseOCR
	case settingsToggleShowRaw:
		settings.ShowRawText = !settings.ShowRawText
	default:
		return b.errorCallbackAnswer(callback, fmt.Errorf("unknown setting %q", settingKey))
	}

	if err = b.db.UpsertUserSettings(ctx, settings); err != nil {
		return b.errorCallbackAnswer(callback, fmt.Errorf("upsert user settings: %w", err))
	}

	if _, err = b.rateLimiter.Request(tgbotapi.NewCallback(callback.ID, "✅ Settings are updated.")); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	return b.handleSettingsCommand(ctx, callback.Message.Chat.ID, callback.From.ID)
}

func (b *Bot) withEmptyCallbackAnswer(
	callback *tgbotapi.CallbackQuery,
	fn func() error,
) error {
	var errs []error

	if _, err := b.rateLimiter.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		errs = append(errs, b.errorCallbackAnswer(callback, fmt.Errorf("send request: %w", err)))
	}

	err := fn()
	if err != nil {
		errs = append(errs, fmt.Errorf("call fn: %w", err))
	}

	return errors.Join(errs...)
}

func (b *Bot) errorCallbackAnswer(
	callback *tgbotapi.CallbackQuery,
	err error,
) error {
	if _, sendErr := b.rateLimiter.Request(tgbotapi.NewCallback(callback.ID, "❌ Failed.")); sendErr != nil {
		return errors.Join(err, fmt.Errorf("send request: %w", sendErr))
	}
	return err
}
