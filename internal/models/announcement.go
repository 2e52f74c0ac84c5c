package models

import (
	"encoding/json"
	"time"
)

// Announcement is an admin-broadcast message shown in a persistent banner.
// Only the most recent active row is displayed; older rows are superseded,
// not deleted.
type Announcement struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// localizedMessage is the structured per-language payload an announcement
// message may carry instead of plain text.
type localizedMessage struct {
	Banner string `json:"banner"`
	Update string `json:"update,omitempty"`
}

// Banner resolves the banner text for the given language. The message is
// either a plain string or a JSON object keyed by language code with banner
// and optional update fields. Anything that does not parse as the structured
// form is treated as plain text.
func (a Announcement) Banner(lang string) string {
	msg, ok := a.localized(lang)
	if !ok {
		return a.Message
	}
	return msg.Banner
}

// Update resolves the optional update text for the given language, or ""
// when the message is plain or carries no update field.
func (a Announcement) Update(lang string) string {
	msg, ok := a.localized(lang)
	if !ok {
		return ""
	}
	return msg.Update
}

func (a Announcement) localized(lang string) (localizedMessage, bool) {
	var byLang map[string]localizedMessage
	if err := json.Unmarshal([]byte(a.Message), &byLang); err != nil {
		return localizedMessage{}, false
	}
	if msg, ok := byLang[lang]; ok && msg.Banner != "" {
		return msg, true
	}
	// Fall back to any language rather than showing raw JSON.
	for _, msg := range byLang {
		if msg.Banner != "" {
			return msg, true
		}
	}
	return localizedMessage{}, false
}
