package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

func scanSQLiteLog(rows *sql.Rows) (models.DailyLog, error) {
	var l models.DailyLog
	var note sql.NullString
	var createdAt string

	if err := rows.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Status, &note, &createdAt); err != nil {
		return models.DailyLog{}, err
	}

	if note.Valid {
		l.Note = &note.String
	}
	var err error
	l.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return l, nil
}

// InsertLogs writes a review batch atomically. Duplicate logs for the
// same habit and day are allowed; readers resolve them last-writer-wins.
func (s *SQLiteStore) InsertLogs(logs []models.DailyLog) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, l := range logs {
		var note sql.NullString
		if l.Note != nil {
			note = sql.NullString{String: *l.Note, Valid: true}
		}
		_, err := tx.Exec(`
			INSERT INTO daily_logs (id, user_id, habit_id, status, note, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, l.UserID, l.HabitID, string(l.Status), note, l.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert log for habit %s: %w", l.HabitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifyWatchers("daily_logs")
	return nil
}

func (s *SQLiteStore) ListLogs(userID string, from, to time.Time) ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, habit_id, status, note, created_at
		FROM daily_logs
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at ASC`,
		userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanSQLiteLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) DeleteLog(id string) error {
	result, err := s.db.Exec(`DELETE FROM daily_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("log not found")
	}

	s.notifyWatchers("daily_logs")
	return nil
}

func (s *SQLiteStore) DeleteLogsInRange(userID string, from, to time.Time) error {
	_, err := s.db.Exec(`
		DELETE FROM daily_logs WHERE user_id = ? AND created_at >= ? AND created_at <= ?`,
		userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	s.notifyWatchers("daily_logs")
	return nil
}

func (s *SQLiteStore) DeleteLogsForHabit(habitID string) error {
	_, err := s.db.Exec(`DELETE FROM daily_logs WHERE habit_id = ?`, habitID)
	if err != nil {
		return err
	}

	s.notifyWatchers("daily_logs")
	return nil
}
