package config

import (
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"auralog/internal/scoring"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ThresholdsHolder provides lock-free access to the current scoring
// thresholds. Reloads swap the pointer atomically so in-flight jobs keep
// a consistent view.
type ThresholdsHolder struct {
	current atomic.Pointer[scoring.Thresholds]
}

// NewThresholdsHolder creates a holder seeded with the built-in defaults.
func NewThresholdsHolder() *ThresholdsHolder {
	h := &ThresholdsHolder{}
	t := scoring.DefaultThresholds()
	h.current.Store(&t)
	return h
}

// Get returns the current thresholds.
func (h *ThresholdsHolder) Get() scoring.Thresholds {
	return *h.current.Load()
}

// LoadFile parses the thresholds YAML file and swaps it in.
// A missing file is not an error; defaults stay in effect.
func (h *ThresholdsHolder) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️  [THRESHOLDS] No thresholds file at %s, using defaults", path)
			return nil
		}
		return err
	}

	var t scoring.Thresholds
	if err := yaml.Unmarshal(data, &t); err != nil {
		return err
	}
	t.FillDefaults()

	h.current.Store(&t)
	log.Printf("✅ [THRESHOLDS] Loaded scoring thresholds from %s", path)
	return nil
}

// Watch reloads the thresholds file whenever it changes on disk.
// Runs until the watcher fails; call in a goroutine.
func (h *ThresholdsHolder) Watch(path string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("⚠️  [THRESHOLDS] Failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	// Watch the directory: editors replace files rather than write in place.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		log.Printf("⚠️  [THRESHOLDS] Failed to watch %s: %v", dir, err)
		return
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := h.LoadFile(path); err != nil {
					log.Printf("⚠️  [THRESHOLDS] Reload failed: %v", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️  [THRESHOLDS] Watcher error: %v", err)
		}
	}
}
