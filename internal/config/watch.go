package config

import (
	"os"
	"sync"
	"time"
)

// Watcher polls file modification times and calls onChange with the path of
// every file whose mtime advanced, or that appeared, since the previous scan.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(string)

	stopCh   chan struct{}
	stopOnce sync.Once
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher. It does nothing until Start.
func NewWatcher(interval time.Duration, onChange func(string), paths ...string) *Watcher {
	return &Watcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		mtimes:   make(map[string]time.Time),
	}
}

// Start records the current mtimes and polls in a goroutine.
func (w *Watcher) Start() {
	w.scan(true)
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates polling. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing files are picked up once they appear
			continue
		}
		mt := fi.ModTime()
		last, seen := w.mtimes[p]
		if seen && !mt.After(last) {
			continue
		}
		w.mtimes[p] = mt
		if !prime && w.onChange != nil {
			w.onChange(p)
		}
	}
}
