package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

const sqliteHabitColumns = "id, user_id, title, icon, color, time_of_day, is_active, created_at, deleted_at"

func scanSQLiteHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var isActive int
	var createdAt string
	var deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Icon, &h.Color, &h.TimeOfDay, &isActive, &createdAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.IsActive = isActive != 0
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		h.DeletedAt = &t
	}

	return h, nil
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	isActive := 0
	if habit.IsActive {
		isActive = 1
	}
	var deletedAt sql.NullString
	if habit.DeletedAt != nil {
		deletedAt = sql.NullString{String: habit.DeletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, title, icon, color, time_of_day, is_active, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			icon = excluded.icon,
			color = excluded.color,
			time_of_day = excluded.time_of_day,
			is_active = excluded.is_active,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.UserID, habit.Title, habit.Icon, habit.Color, string(habit.TimeOfDay),
		isActive, habit.CreatedAt.UTC().Format(time.RFC3339), deletedAt)
	if err != nil {
		return err
	}

	s.notifyWatchers("habits")
	return nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+sqliteHabitColumns+`
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	return scanSQLiteHabit(row)
}

func (s *SQLiteStore) GetHabitByTitle(title string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+sqliteHabitColumns+`
		FROM habits WHERE title = ? COLLATE NOCASE AND deleted_at IS NULL`, title)
	return scanSQLiteHabit(row)
}

func (s *SQLiteStore) ListActiveHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT `+sqliteHabitColumns+`
		FROM habits
		WHERE user_id = ? AND is_active = 1 AND deleted_at IS NULL
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanSQLiteHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) GetAllHabits(includeInactive, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + sqliteHabitColumns + " FROM habits WHERE 1=1"
	if !includeInactive {
		query += " AND is_active = 1"
	}
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanSQLiteHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// ArchiveHabit deactivates a habit while keeping its historical logs.
func (s *SQLiteStore) ArchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET is_active = 0 WHERE id = ? AND deleted_at IS NULL AND is_active = 1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or already archived/deleted")
	}

	s.notifyWatchers("habits")
	return nil
}

func (s *SQLiteStore) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET is_active = 1 WHERE id = ? AND deleted_at IS NULL AND is_active = 0`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or not archived")
	}

	s.notifyWatchers("habits")
	return nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or already deleted")
	}

	s.notifyWatchers("habits")
	return nil
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit not found or not deleted")
	}

	s.notifyWatchers("habits")
	return nil
}
