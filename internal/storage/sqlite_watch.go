package storage

import "time"

// sqlitePollInterval is how often the watcher checks for external
// writers. Local writes through this store notify immediately.
const sqlitePollInterval = 2 * time.Second

// Subscribe registers a callback for changes to the named table.
// Same-process writes notify synchronously after commit; writes from
// other processes are picked up by a data_version poll.
func (s *SQLiteStore) Subscribe(table string, onChange func(Change)) (func(), error) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.watchers[table] == nil {
		s.watchers[table] = make(map[int]func(Change))
	}
	s.watchSeq++
	id := s.watchSeq
	s.watchers[table][id] = onChange

	if s.watchStop == nil {
		s.watchStop = make(chan struct{})
		go s.pollLoop(s.watchStop)
	}

	return func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		delete(s.watchers[table], id)
	}, nil
}

func (s *SQLiteStore) notifyWatchers(table string) {
	s.watchMu.Lock()
	subs := make([]func(Change), 0, len(s.watchers[table]))
	for _, fn := range s.watchers[table] {
		subs = append(subs, fn)
	}
	s.watchMu.Unlock()

	for _, fn := range subs {
		fn(Change{Table: table, Op: "write"})
	}
}

// pollLoop watches PRAGMA data_version, which SQLite bumps whenever
// another connection commits. It cannot tell which table changed, so
// every subscribed table is notified.
func (s *SQLiteStore) pollLoop(stop chan struct{}) {
	ticker := time.NewTicker(sqlitePollInterval)
	defer ticker.Stop()

	var last int64
	haveLast := false

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			var v int64
			if err := s.db.QueryRow("PRAGMA data_version").Scan(&v); err != nil {
				continue
			}
			if haveLast && v != last {
				s.watchMu.Lock()
				tables := make([]string, 0, len(s.watchers))
				for table, subs := range s.watchers {
					if len(subs) > 0 {
						tables = append(tables, table)
					}
				}
				s.watchMu.Unlock()
				for _, table := range tables {
					s.notifyWatchers(table)
				}
			}
			last = v
			haveLast = true
		}
	}
}

func (s *SQLiteStore) stopWatching() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.watchStop != nil {
		close(s.watchStop)
		s.watchStop = nil
	}
}
