package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultGrace is how long a delivered poster stays on disk.
const DefaultGrace = 20 * time.Second

type removal struct {
	timer *time.Timer
	paths []string
}

// Janitor deletes workspaces and uploads once their grace period is over.
type Janitor struct {
	logger *logrus.Logger

	mu      sync.Mutex
	next    uint64
	pending map[uint64]*removal
}

func NewJanitor(logger *logrus.Logger) *Janitor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Janitor{
		logger:  logger,
		pending: make(map[uint64]*removal),
	}
}

// Schedule removes paths (files or directories, recursively) after grace.
func (j *Janitor) Schedule(grace time.Duration, paths ...string) {
	if len(paths) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	id := j.next
	j.next++
	r := &removal{paths: paths}
	r.timer = time.AfterFunc(grace, func() { j.fire(id) })
	j.pending[id] = r
}

// Pending is the number of scheduled removals that have not run yet.
func (j *Janitor) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pending)
}

// Flush runs every pending removal now.
func (j *Janitor) Flush() {
	j.mu.Lock()
	all := j.pending
	j.pending = make(map[uint64]*removal)
	j.mu.Unlock()

	for _, r := range all {
		r.timer.Stop()
		j.remove(r.paths)
	}
	if len(all) > 0 {
		j.logger.WithField("count", len(all)).Info("flushed pending cleanups")
	}
}

func (j *Janitor) fire(id uint64) {
	j.mu.Lock()
	r, ok := j.pending[id]
	delete(j.pending, id)
	j.mu.Unlock()
	if ok {
		j.remove(r.paths)
	}
}

func (j *Janitor) remove(paths []string) {
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			j.logger.WithError(err).WithField("path", p).Warn("cleanup failed")
			continue
		}
		j.logger.WithField("path", p).Debug("cleaned up")
	}
}

// Sweep removes workspace directories under root whose last modification
// is older than maxAge. It returns how many were removed.
func (j *Janitor) Sweep(root string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), DirPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(root, e.Name())
		if err := os.RemoveAll(path); err != nil {
			j.logger.WithError(err).WithField("path", path).Warn("sweep failed")
			continue
		}
		removed++
	}
	if removed > 0 {
		j.logger.WithFields(logrus.Fields{"root": root, "removed": removed}).Info("swept stale workspaces")
	}
	return removed, nil
}

// Run sweeps root every interval until ctx is done, then flushes.
func (j *Janitor) Run(ctx context.Context, root string, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	j.logger.WithFields(logrus.Fields{"interval": interval, "max_age": maxAge}).Info("workspace janitor started")
	for {
		select {
		case <-ctx.Done():
			j.Flush()
			j.logger.Info("workspace janitor stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						j.logger.Errorf("recovered in workspace sweep: %v", r)
					}
				}()
				if _, err := j.Sweep(root, maxAge); err != nil {
					j.logger.WithError(err).Warn("workspace sweep failed")
				}
			}()
		}
	}
}
