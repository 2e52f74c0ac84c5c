package models

import "testing"

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		local, remote string
		want          VersionStatus
	}{
		{"1.0.1", "1.0.1", VersionUpToDate},
		{"1.0.1", "1.0.2", VersionMismatch},
		{"1.0.1", "", VersionUnknown},
	}
	for _, tc := range tests {
		if got := CheckVersion(tc.local, tc.remote); got != tc.want {
			t.Errorf("CheckVersion(%q, %q) = %v, want %v", tc.local, tc.remote, got, tc.want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	s := AppSettings{AdminUser: "u1", UserID: "u1"}
	if !s.IsAdmin() {
		t.Error("matching admin user should be admin")
	}
	s.UserID = "u2"
	if s.IsAdmin() {
		t.Error("non-matching user must not be admin")
	}
	s = AppSettings{}
	if s.IsAdmin() {
		t.Error("empty admin user means no admin")
	}
}
