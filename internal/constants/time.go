package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the year-month format used by the history month filter (YYYY-MM)
	MonthFormat = "2006-01"
)
