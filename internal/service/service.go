// Package service wires the Path Index, Search Engine, Scanner, Cache,
// and Watcher together, implementing the "Search Engine (glue)"
// operations from spec §4.5 that sit outside the core contract:
// index_directory, apply_watch_events, and cache load/save.
//
// Service runs everything from a single goroutine (the CLI's main
// loop): index mutation and Search are never called concurrently,
// matching §5's single-owner-thread policy without adding a lock the
// core spec deliberately omits.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nicolaygerold/sniff/internal/cache"
	"github.com/nicolaygerold/sniff/internal/pathindex"
	"github.com/nicolaygerold/sniff/internal/scan"
	"github.com/nicolaygerold/sniff/internal/search"
	"github.com/nicolaygerold/sniff/internal/watch"
)

// Service bundles one search session over one root directory.
type Service struct {
	Root    string
	Index   *pathindex.Index
	Engine  *search.Engine
	Scanner *scan.Scanner
	Watcher *watch.Watcher

	// Logf reports filesystem-transient errors (spec §7) that are
	// skipped rather than propagated. It defaults to writing to
	// os.Stderr, matching keystorm's own plain-stderr idiom for
	// non-fatal diagnostics.
	Logf func(format string, args ...any)
}

// New builds a Service rooted at root with the given scan
// configuration.
func New(root string, cfg scan.Config) *Service {
	idx := pathindex.New()
	return &Service{
		Root:    root,
		Index:   idx,
		Engine:  search.NewEngine(idx),
		Scanner: scan.New(cfg),
		Logf:    func(format string, args ...any) { fmt.Fprintf(os.Stderr, format+"\n", args...) },
	}
}

// IndexDirectory performs a full scan of Root, adding every surviving
// file to Index. It returns the number of files added.
func (s *Service) IndexDirectory() (int, error) {
	count := 0
	err := s.Scanner.Scan(s.Root, func(rel string) {
		s.Index.Add(rel)
		count++
	})
	if err != nil {
		return count, &Error{Op: "index_directory", Path: s.Root, Err: err}
	}
	return count, nil
}

// LoadCache attempts to populate Index from the cache file at path.
// Any integrity failure (spec §7's "cache integrity" kind) is treated
// as a cache miss: it returns false, nil rather than an error, and
// leaves Index untouched.
func (s *Service) LoadCache(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, nil
	}
	defer f.Close()

	paths, _, err := cache.Load(f, s.Root)
	if err != nil {
		return false, nil
	}
	s.Index.Clear()
	for _, p := range paths {
		s.Index.Add(p)
	}
	return true, nil
}

// SaveCache writes the current Index to path, creating parent
// directories as needed.
func (s *Service) SaveCache(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Op: "save_cache", Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &Error{Op: "save_cache", Path: path, Err: err}
	}
	defer f.Close()

	paths := make([]string, 0, s.Index.Count())
	for _, e := range s.Index.All() {
		paths = append(paths, e.Path)
	}
	if err := cache.Save(f, s.Root, time.Now(), paths); err != nil {
		return &Error{Op: "save_cache", Path: path, Err: err}
	}
	return nil
}

// Search runs q against the current Index.
func (s *Service) Search(q string) []search.ScoredEntry {
	return s.Engine.Search(q)
}

// StartWatcher begins watching Root and every directory beneath it.
// fsnotify is not recursive, so Service walks the tree once up front
// and watches every directory found; newly created directories are
// picked up incrementally by ApplyWatchEvents.
func (s *Service) StartWatcher() error {
	w, err := watch.New()
	if err != nil {
		return &Error{Op: "start_watcher", Path: s.Root, Err: err}
	}
	if err := w.Add(s.Root); err != nil {
		w.Close()
		return &Error{Op: "start_watcher", Path: s.Root, Err: err}
	}
	_ = filepath.WalkDir(s.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() || p == s.Root {
			return nil
		}
		if addErr := w.Add(p); addErr != nil {
			s.Logf("sniff: watch %s: %v", p, addErr)
		}
		return nil
	})
	s.Watcher = w
	return nil
}

// ApplyWatchEvents drains pending Watcher events and translates each
// into Index mutations per spec §4.5.
func (s *Service) ApplyWatchEvents() {
	if s.Watcher == nil {
		return
	}
	for _, ev := range s.Watcher.Poll() {
		rel, err := filepath.Rel(s.Root, ev.Path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		switch ev.Kind {
		case watch.Created:
			s.applyCreated(ev.Path, rel)
		case watch.Deleted:
			s.Index.Remove(rel)
			s.Index.RemoveWithPrefix(rel + "/")
		case watch.Modified:
			s.applyModified(ev.Path, rel)
		case watch.Renamed:
			// The old path is gone; a matching created event for the
			// new name arrives separately and is handled by
			// applyCreated (spec §4.5: "remove and wait for a
			// matching created").
			s.Index.Remove(rel)
			s.Index.RemoveWithPrefix(rel + "/")
		}
	}
}

func (s *Service) applyCreated(abs, rel string) {
	info, err := os.Stat(abs)
	if err != nil {
		return
	}
	if info.IsDir() {
		if watchErr := s.Watcher.Add(abs); watchErr != nil {
			s.Logf("sniff: watch %s: %v", abs, watchErr)
		}
		_ = s.Scanner.Scan(abs, func(sub string) {
			s.Index.Add(rel + "/" + sub)
		})
		return
	}
	s.Index.Add(rel)
}

func (s *Service) applyModified(abs, rel string) {
	info, err := os.Stat(abs)
	if err != nil {
		return
	}
	if !info.IsDir() {
		// File contents are not indexed; nothing to do (spec §9).
		return
	}
	s.Index.RemoveWithPrefix(rel + "/")
	_ = s.Scanner.Scan(abs, func(sub string) {
		s.Index.Add(rel + "/" + sub)
	})
}
