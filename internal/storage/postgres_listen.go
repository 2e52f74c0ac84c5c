package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/julianstephens/nightly/internal/logger"
)

const (
	listenMinReconnect = 10 * time.Second
	listenMaxReconnect = time.Minute
)

// notifyChannel maps a table name to its LISTEN/NOTIFY channel. The
// channels are fed by statement-level triggers created in the schema
// migration.
func notifyChannel(table string) string {
	return "nightly_" + table
}

// Subscribe registers onChange for server-side mutations of the named
// table, delivered over a shared pq.Listener.
func (s *PostgresStore) Subscribe(table string, onChange func(Change)) (func(), error) {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()

	if s.listener == nil {
		l := pq.NewListener(s.connStr, listenMinReconnect, listenMaxReconnect, func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("listener event", "event", ev, "error", err)
			}
		})
		s.listener = l
		s.listenDone = make(chan struct{})
		go s.dispatchNotifications(l, s.listenDone)
	}

	channel := notifyChannel(table)
	if s.listenSubs[channel] == nil {
		if err := s.listener.Listen(channel); err != nil {
			return nil, fmt.Errorf("failed to listen on %s: %w", channel, err)
		}
		s.listenSubs[channel] = make(map[int]func(Change))
	}
	s.listenSeq++
	id := s.listenSeq
	s.listenSubs[channel][id] = onChange

	return func() {
		s.listenMu.Lock()
		defer s.listenMu.Unlock()
		delete(s.listenSubs[channel], id)
		if len(s.listenSubs[channel]) == 0 && s.listener != nil {
			_ = s.listener.Unlisten(channel)
			delete(s.listenSubs, channel)
		}
	}, nil
}

func (s *PostgresStore) dispatchNotifications(l *pq.Listener, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case n, ok := <-l.Notify:
			if !ok {
				return
			}
			// A nil notification signals a reconnect; subscribers
			// re-read on any delivery so a blanket notify is safe.
			if n == nil {
				s.notifyAll()
				continue
			}
			table := strings.TrimPrefix(n.Channel, "nightly_")
			s.deliver(n.Channel, Change{Table: table, Op: n.Extra})
		}
	}
}

func (s *PostgresStore) deliver(channel string, change Change) {
	s.listenMu.Lock()
	subs := make([]func(Change), 0, len(s.listenSubs[channel]))
	for _, fn := range s.listenSubs[channel] {
		subs = append(subs, fn)
	}
	s.listenMu.Unlock()

	for _, fn := range subs {
		fn(change)
	}
}

func (s *PostgresStore) notifyAll() {
	s.listenMu.Lock()
	channels := make([]string, 0, len(s.listenSubs))
	for ch := range s.listenSubs {
		channels = append(channels, ch)
	}
	s.listenMu.Unlock()

	for _, ch := range channels {
		s.deliver(ch, Change{Table: strings.TrimPrefix(ch, "nightly_"), Op: "reconnect"})
	}
}

func (s *PostgresStore) stopListening() {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	if s.listenDone != nil {
		close(s.listenDone)
		s.listenDone = nil
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// redactConnStr strips the password from a connection string so it can
// be shown in status output.
func redactConnStr(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Host != "" {
		host := u.Host
		if u.User != nil {
			return u.User.Username() + "@" + host + u.Path
		}
		return host + u.Path
	}

	var parts []string
	for _, kv := range strings.Fields(connStr) {
		if strings.HasPrefix(kv, "password=") {
			continue
		}
		parts = append(parts, kv)
	}
	return strings.Join(parts, " ")
}
