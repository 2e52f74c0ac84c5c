package storage

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/models"
)

func (s *SQLiteStore) GetSettings() (models.AppSettings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.AppSettings{}, err
	}
	defer rows.Close()

	settings := models.AppSettings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.AppSettings{}, err
		}
		switch key {
		case constants.SettingMaintenanceMode:
			settings.MaintenanceMode = value == "true"
		case constants.SettingAppVersion:
			settings.AppVersion = value
		case constants.SettingAdminUser:
			settings.AdminUser = value
		case constants.SettingUserID:
			settings.UserID = value
		case constants.SettingTimezone:
			settings.Timezone = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.AppSettings{}, err
	}

	if count == 0 {
		return models.AppSettings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.AppSettings) error {
	pairs := [][2]string{
		{constants.SettingMaintenanceMode, strconv.FormatBool(settings.MaintenanceMode)},
		{constants.SettingAppVersion, settings.AppVersion},
		{constants.SettingAdminUser, settings.AdminUser},
		{constants.SettingUserID, settings.UserID},
		{constants.SettingTimezone, settings.Timezone},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, p := range pairs {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, p[0], p[1])
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save setting %s: %w", p[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifyWatchers("settings")
	return nil
}
