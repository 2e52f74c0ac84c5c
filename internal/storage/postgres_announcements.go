package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/nightly/internal/models"
)

func scanPGAnnouncement(row interface{ Scan(...any) error }) (models.Announcement, error) {
	var a models.Announcement
	if err := row.Scan(&a.ID, &a.Message, &a.IsActive, &a.CreatedAt); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

func (s *PostgresStore) PublishAnnouncement(message string) (models.Announcement, error) {
	a := models.Announcement{
		ID:        uuid.New().String(),
		Message:   message,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO announcements (id, message, is_active, created_at)
		VALUES ($1, $2, TRUE, $3)`,
		a.ID, a.Message, a.CreatedAt)
	if err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

func (s *PostgresStore) LatestActiveAnnouncement() (models.Announcement, error) {
	row := s.db.QueryRow(`
		SELECT id, message, is_active, created_at
		FROM announcements
		WHERE is_active
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)

	a, err := scanPGAnnouncement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Announcement{}, ErrNoAnnouncement
		}
		return models.Announcement{}, err
	}
	return a, nil
}

func (s *PostgresStore) ListAnnouncements(limit int) ([]models.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, message, is_active, created_at
		FROM announcements
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Announcement
	for rows.Next() {
		a, err := scanPGAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SetAnnouncementActive(id string, active bool) error {
	result, err := s.db.Exec(`UPDATE announcements SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "announcement not found")
}
