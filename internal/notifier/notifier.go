// Package notifier delivers desktop reminders through the nightly-tray
// companion. The tray writes a lockfile (port|pid|secret) into its config
// dir; the pid must still belong to a nightly-tray process before we post
// to its local webhook.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/nightly/internal/constants"
)

const webhookTimeout = 3 * time.Second

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// lockfile is the parsed port|pid|secret line nightly-tray writes on start.
type lockfile struct {
	Port   int
	Pid    int
	Secret string
}

type payload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type Notifier struct{}

func New() *Notifier {
	return &Notifier{}
}

// Notify shows a desktop popup with the given text. It fails when the
// tray is not running; callers treat that as "no reminder", not a crash.
func (n *Notifier) Notify(text string) error {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return fmt.Errorf("failed to get user config dir: %w", err)
	}
	lockPath := filepath.Join(configDir, constants.TrayAppIdentifier, constants.NotifierLockfileName)

	raw, err := os.ReadFile(lockPath)
	if err != nil {
		return errors.New("nightly-tray is not running")
	}
	lock, err := parseLockfile(raw)
	if err != nil {
		return err
	}
	if err := validateTrayPid(lock.Pid); err != nil {
		return err
	}

	return postWebhook(lock, payload{Text: text, DurationMs: constants.NotificationDurationMs})
}

func parseLockfile(raw []byte) (lockfile, error) {
	parts := strings.Split(strings.TrimSpace(string(raw)), "|")
	if len(parts) != 3 {
		return lockfile{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(parts[0])
	if err != nil || port < 1 || port > 65535 {
		return lockfile{}, fmt.Errorf("invalid port %q in lockfile", parts[0])
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return lockfile{}, fmt.Errorf("invalid pid %q in lockfile", parts[1])
	}
	if strings.TrimSpace(parts[2]) == "" {
		return lockfile{}, errors.New("secret in lockfile is empty")
	}

	return lockfile{Port: port, Pid: pid, Secret: parts[2]}, nil
}

// validateTrayPid guards against a stale lockfile whose pid was recycled
// by an unrelated process.
func validateTrayPid(pid int) error {
	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return errors.New("nightly-tray process not running")
	}
	if !strings.HasPrefix(proc.Executable(), "nightly-tray") {
		return fmt.Errorf("pid %d is not nightly-tray (found %s)", pid, proc.Executable())
	}
	return nil
}

func postWebhook(lock lockfile, p payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://127.0.0.1:%d", lock.Port), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nightly-Secret", lock.Secret)

	client := &http.Client{Timeout: webhookTimeout}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}
