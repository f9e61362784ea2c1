package download

import "sync"

// Report is a point-in-time snapshot of download counters.
type Report struct {
	Downloaded    int
	AlreadyExists int
	Failed        int
}

// Total counts every chapter file that ended up on disk.
func (r Report) Total() int {
	return r.Downloaded + r.AlreadyExists
}

// Stats counts download outcomes across workers.
type Stats struct {
	mu            sync.Mutex
	downloaded    int
	alreadyExists int
	failed        int
}

func (s *Stats) addDownloaded() {
	s.mu.Lock()
	s.downloaded++
	s.mu.Unlock()
}

func (s *Stats) addExists() {
	s.mu.Lock()
	s.alreadyExists++
	s.mu.Unlock()
}

func (s *Stats) addFailed() {
	s.mu.Lock()
	s.failed++
	s.mu.Unlock()
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Report{Downloaded: s.downloaded, AlreadyExists: s.alreadyExists, Failed: s.failed}
}
