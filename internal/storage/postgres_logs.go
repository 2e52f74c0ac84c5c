package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

func scanPGLog(rows *sql.Rows) (models.DailyLog, error) {
	var l models.DailyLog
	var note sql.NullString

	if err := rows.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Status, &note, &l.CreatedAt); err != nil {
		return models.DailyLog{}, err
	}
	if note.Valid {
		l.Note = &note.String
	}
	return l, nil
}

func (s *PostgresStore) InsertLogs(logs []models.DailyLog) error {
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
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, l.UserID, l.HabitID, string(l.Status), note, l.CreatedAt.UTC())
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert log for habit %s: %w", l.HabitID, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) ListLogs(userID string, from, to time.Time) ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, habit_id, status, note, created_at
		FROM daily_logs
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC`,
		userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanPGLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *PostgresStore) DeleteLog(id string) error {
	result, err := s.db.Exec(`DELETE FROM daily_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "log not found")
}

func (s *PostgresStore) DeleteLogsInRange(userID string, from, to time.Time) error {
	_, err := s.db.Exec(`
		DELETE FROM daily_logs WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3`,
		userID, from.UTC(), to.UTC())
	return err
}

func (s *PostgresStore) DeleteLogsForHabit(habitID string) error {
	_, err := s.db.Exec(`DELETE FROM daily_logs WHERE habit_id = $1`, habitID)
	return err
}
