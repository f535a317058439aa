package mockserver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 50 * time.Millisecond

func (s *Server) loadFixture() error {
	data, err := os.ReadFile(s.config.FixturePath)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	s.fixture.Store(&data)
	return nil
}

// Fixture returns the SSE body served to streaming requests, or nil when
// the server synthesizes its responses.
func (s *Server) Fixture() []byte {
	if p := s.fixture.Load(); p != nil {
		return *p
	}
	return nil
}

// watchFixture reloads the fixture whenever it is written or replaced. The
// parent directory is watched because editors often save by renaming a new
// file over the old one.
func (s *Server) watchFixture() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	path, err := filepath.Abs(s.config.FixturePath)
	if err != nil {
		w.Close()
		return err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch fixture directory: %w", err)
	}

	s.watcher = w
	s.watchDone = make(chan struct{})
	go s.watchLoop(path)
	return nil
}

func (s *Server) watchLoop(path string) {
	defer close(s.watchDone)

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				if debounce != nil {
					debounce.Stop()
				}
				return
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, s.reloadFixture)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("fixture watcher error", "error", err)
		}
	}
}

func (s *Server) reloadFixture() {
	if err := s.loadFixture(); err != nil {
		s.logger.Warn("fixture reload failed, keeping previous fixture", "error", err)
		return
	}
	s.logger.Info("fixture reloaded", "path", s.config.FixturePath, "bytes", len(s.Fixture()))
}
