// Package watch implements the Watcher collaborator (spec §6.1): a
// non-blocking poll that drains filesystem change events, translated
// from github.com/fsnotify/fsnotify into the four kinds the engine's
// apply_watch_events glue understands.
package watch

import "github.com/fsnotify/fsnotify"

// Kind identifies what happened to a path.
type Kind int

const (
	Created Kind = iota
	Deleted
	Modified
	Renamed
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is a single filesystem change.
type Event struct {
	Path string
	Kind Kind
}

// Watcher wraps an fsnotify.Watcher behind the non-blocking poll
// contract the core expects.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// New starts a new OS-backed Watcher.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsw: fsw}, nil
}

// Add begins watching path (a single directory; not recursive).
func (w *Watcher) Add(path string) error {
	return w.fsw.Add(path)
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) error {
	return w.fsw.Remove(path)
}

// Close releases the underlying OS watch handles.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Poll drains every event currently pending without blocking.
// Filesystem-transient errors reported by the underlying watcher are
// dropped per spec §7; they never abort polling.
func (w *Watcher) Poll() []Event {
	var events []Event
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return events
			}
			if kind, relevant := translate(ev.Op); relevant {
				events = append(events, Event{Path: ev.Name, Kind: kind})
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return events
			}
		default:
			return events
		}
	}
}

func translate(op fsnotify.Op) (Kind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return Created, true
	case op.Has(fsnotify.Remove):
		return Deleted, true
	case op.Has(fsnotify.Rename):
		return Renamed, true
	case op.Has(fsnotify.Write):
		return Modified, true
	default:
		return 0, false
	}
}
