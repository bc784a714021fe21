package controller

import (
	"slices"
	"time"

	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

// Status is the load lifecycle of the catalog.
type Status int

// Load lifecycle states.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusLoadError
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusLoadError:
		return "load_error"
	default:
		return "unknown"
	}
}

// State is the application state. The controller replaces it wholesale on
// every load or filter change; callers only ever see copies.
type State struct {
	// Items is the full catalog sorted by title.
	Items []items.Item

	// View is Items narrowed by Filter.
	View []items.Item

	Filter     filter.Filter
	Vocabulary filter.Vocabulary
	Status     Status

	// Err is the last load failure, kept until the next successful load.
	Err error

	LoadedAt time.Time
}

// Loaded reports whether a catalog has been loaded at least once.
func (s State) Loaded() bool {
	return !s.LoadedAt.IsZero()
}

// Find returns the loaded record with the given key.
func (s State) Find(id string) (items.Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return items.Item{}, false
}

// WithFilter returns a copy of the state narrowed by f. Selections missing
// from the vocabulary are cleared.
func (s State) WithFilter(f filter.Filter) State {
	out := s.clone()
	out.Filter = f.Reconcile(out.Vocabulary)
	out.View = out.Filter.Apply(out.Items)
	return out
}

func (s State) clone() State {
	out := s
	out.Items = cloneItems(s.Items)
	out.View = cloneItems(s.View)
	out.Vocabulary = filter.Vocabulary{
		Categories: slices.Clone(s.Vocabulary.Categories),
		Platforms:  slices.Clone(s.Vocabulary.Platforms),
	}
	return out
}

func cloneItems(list []items.Item) []items.Item {
	out := make([]items.Item, len(list))
	copy(out, list)
	return out
}
