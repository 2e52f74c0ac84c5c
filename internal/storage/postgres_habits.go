package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

const pgHabitColumns = "id, user_id, title, icon, color, time_of_day, is_active, created_at, deleted_at"

func scanPGHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var deletedAt sql.NullTime

	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Icon, &h.Color, &h.TimeOfDay, &h.IsActive, &h.CreatedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		h.DeletedAt = &t
	}
	return h, nil
}

func (s *PostgresStore) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *PostgresStore) UpdateHabit(habit models.Habit) error {
	var deletedAt sql.NullTime
	if habit.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: habit.DeletedAt.UTC(), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, title, icon, color, time_of_day, is_active, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			icon = EXCLUDED.icon,
			color = EXCLUDED.color,
			time_of_day = EXCLUDED.time_of_day,
			is_active = EXCLUDED.is_active,
			deleted_at = EXCLUDED.deleted_at`,
		habit.ID, habit.UserID, habit.Title, habit.Icon, habit.Color, string(habit.TimeOfDay),
		habit.IsActive, habit.CreatedAt.UTC(), deletedAt)
	return err
}

func (s *PostgresStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+pgHabitColumns+`
		FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanPGHabit(row)
}

func (s *PostgresStore) GetHabitByTitle(title string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+pgHabitColumns+`
		FROM habits WHERE lower(title) = lower($1) AND deleted_at IS NULL`, title)
	return scanPGHabit(row)
}

func (s *PostgresStore) ListActiveHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT `+pgHabitColumns+`
		FROM habits
		WHERE user_id = $1 AND is_active AND deleted_at IS NULL
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanPGHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *PostgresStore) GetAllHabits(includeInactive, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + pgHabitColumns + " FROM habits WHERE TRUE"
	if !includeInactive {
		query += " AND is_active"
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
		h, err := scanPGHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *PostgresStore) ArchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET is_active = FALSE WHERE id = $1 AND deleted_at IS NULL AND is_active`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or already archived/deleted")
}

func (s *PostgresStore) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET is_active = TRUE WHERE id = $1 AND deleted_at IS NULL AND NOT is_active`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or not archived")
}

func (s *PostgresStore) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or already deleted")
}

func (s *PostgresStore) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "habit not found or not deleted")
}

func requireAffected(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s", msg)
	}
	return nil
}
