package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/nightly/internal/models"
)

func scanSQLiteAnnouncement(row interface{ Scan(...any) error }) (models.Announcement, error) {
	var a models.Announcement
	var isActive int
	var createdAt string

	if err := row.Scan(&a.ID, &a.Message, &isActive, &createdAt); err != nil {
		return models.Announcement{}, err
	}

	a.IsActive = isActive != 0
	var err error
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Announcement{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return a, nil
}

func (s *SQLiteStore) PublishAnnouncement(message string) (models.Announcement, error) {
	a := models.Announcement{
		ID:        uuid.New().String(),
		Message:   message,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO announcements (id, message, is_active, created_at)
		VALUES (?, ?, 1, ?)`,
		a.ID, a.Message, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return models.Announcement{}, err
	}

	s.notifyWatchers("announcements")
	return a, nil
}

// LatestActiveAnnouncement returns the newest active announcement.
// Older active rows stay in place; newest wins on read.
func (s *SQLiteStore) LatestActiveAnnouncement() (models.Announcement, error) {
	row := s.db.QueryRow(`
		SELECT id, message, is_active, created_at
		FROM announcements
		WHERE is_active = 1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)

	a, err := scanSQLiteAnnouncement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Announcement{}, ErrNoAnnouncement
		}
		return models.Announcement{}, err
	}
	return a, nil
}

func (s *SQLiteStore) ListAnnouncements(limit int) ([]models.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, message, is_active, created_at
		FROM announcements
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Announcement
	for rows.Next() {
		a, err := scanSQLiteAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SetAnnouncementActive(id string, active bool) error {
	v := 0
	if active {
		v = 1
	}
	result, err := s.db.Exec(`UPDATE announcements SET is_active = ? WHERE id = ?`, v, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("announcement not found")
	}

	s.notifyWatchers("announcements")
	return nil
}
