package models

import "testing"

func TestAnnouncementPlainMessage(t *testing.T) {
	a := Announcement{Message: "Scheduled downtime tonight"}
	if got := a.Banner("en"); got != "Scheduled downtime tonight" {
		t.Errorf("Banner = %q, want the raw message", got)
	}
	if got := a.Update("en"); got != "" {
		t.Errorf("Update = %q, want empty for plain messages", got)
	}
}

func TestAnnouncementLocalizedMessage(t *testing.T) {
	a := Announcement{Message: `{"es":{"banner":"Nueva versión","update":"Detalles"},"en":{"banner":"New version"}}`}

	if got := a.Banner("es"); got != "Nueva versión" {
		t.Errorf("Banner(es) = %q", got)
	}
	if got := a.Banner("en"); got != "New version" {
		t.Errorf("Banner(en) = %q", got)
	}
	if got := a.Update("es"); got != "Detalles" {
		t.Errorf("Update(es) = %q", got)
	}

	// Unknown language falls back to some available banner, never raw JSON.
	got := a.Banner("fr")
	if got != "Nueva versión" && got != "New version" {
		t.Errorf("Banner(fr) = %q, want a fallback banner", got)
	}
}

func TestAnnouncementMalformedJSON(t *testing.T) {
	a := Announcement{Message: `{"es": "broken`}
	if got := a.Banner("es"); got != a.Message {
		t.Errorf("Banner = %q, malformed payloads degrade to plain text", got)
	}
}
