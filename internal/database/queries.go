package database

import (
	"context"
	"fmt"

	"doclens/internal/models"
)

// GetUserSettingsWithDefault returns the user's stored settings, or the
// defaults (OCR off, raw text hidden) when none are stored yet.
func (d *Database) GetUserSettingsWithDefault(
	ctx context.Context,
	userID int64,
) (*models.UserSettings, error) {
	query := `select user_id, use_ocr, show_raw_text
	from user_settings
	where user_id = ?`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"userID", userID,
				"operation", "GetUserSettingsWithDefault")
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate rows: %w", err)
		}
		return &models.UserSettings{
			UserID:      userID,
			UseOCR:      false,
			ShowRawText: false,
		}, nil
	}

	var us models.UserSettings
	var useOCR, showRawText int64
	if err = rows.Scan(&us.UserID, &useOCR, &showRawText); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	us.UseOCR = useOCR != 0
	us.ShowRawText = showRawText != 0

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return &us, nil
}

func (d *Database) UpsertUserSettings(ctx context.Context, userSettings *models.UserSettings) error {
	query := `insert into user_settings (user_id, use_ocr, show_raw_text)
	values (?, ?, ?)
	on conflict (user_id) do update
	set use_ocr = excluded.use_ocr,
	show_raw_text = excluded.show_raw_text`

	_, err := d.db.ExecContext(
		ctx,
		query,
		userSettings.UserID,
		boolToInt(userSettings.UseOCR),
		boolToInt(userSettings.ShowRawText),
	)

	return err
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
