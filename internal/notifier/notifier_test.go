package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid        int
	executable string
}

func (p *fakeProcess) Pid() int           { return p.pid }
func (p *fakeProcess) PPid() int          { return 0 }
func (p *fakeProcess) Executable() string { return p.executable }

func TestParseLockfile(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    lockfile
		wantErr bool
	}{
		{"valid", "8080|12345|s3cret", lockfile{Port: 8080, Pid: 12345, Secret: "s3cret"}, false},
		{"trailing newline", "8080|12345|s3cret\n", lockfile{Port: 8080, Pid: 12345, Secret: "s3cret"}, false},
		{"two fields", "8080|12345", lockfile{}, true},
		{"garbage", "invalid", lockfile{}, true},
		{"empty port", "|12345|s3cret", lockfile{}, true},
		{"port out of range", "99999|12345|s3cret", lockfile{}, true},
		{"bad pid", "8080|abc|s3cret", lockfile{}, true},
		{"empty secret", "8080|12345|", lockfile{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLockfile([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseLockfile(%q) succeeded, want error", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLockfile(%q) failed: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("parseLockfile(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestValidateTrayPid(t *testing.T) {
	orig := findProcessFunc
	defer func() { findProcessFunc = orig }()

	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	if err := validateTrayPid(42); err == nil {
		t.Error("expected error when the process is gone")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &fakeProcess{pid: pid, executable: "some-editor"}, nil
	}
	if err := validateTrayPid(42); err == nil {
		t.Error("expected error for a recycled pid")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &fakeProcess{pid: pid, executable: "nightly-tray"}, nil
	}
	if err := validateTrayPid(42); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPostWebhook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Nightly-Secret") != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var p payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Text == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		t.Fatal(err)
	}

	lock := lockfile{Port: port, Pid: 1, Secret: "s3cret"}
	if err := postWebhook(lock, payload{Text: "evening review"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	lock.Secret = "wrong"
	if err := postWebhook(lock, payload{Text: "evening review"}); err == nil {
		t.Error("expected error for a rejected secret")
	}
}
