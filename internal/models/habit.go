package models

import "time"

// TimeOfDay tags a habit with the part of day it belongs to.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayNight     TimeOfDay = "night"
)

// Habit is a recurring personal action the user tracks daily. Icon and Color
// may be empty, in which case a deterministic default is derived from the
// title and list position (see appearance.go); the fallback is never persisted.
type Habit struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Icon      string     `json:"icon,omitempty"`
	Color     string     `json:"color,omitempty"`
	TimeOfDay TimeOfDay  `json:"time_of_day,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
