package store

import (
	"strings"

	"github.com/agentstation/retroshelf/pkg/errors"
)

var (
	// ErrInvalidPath is returned for empty paths, paths with empty segments
	// and paths with "." or ".." segments.
	ErrInvalidPath = errors.New("invalid store path")

	// ErrUnsupportedPath is returned by backends that only hold
	// collection/key paths when asked for a deeper node.
	ErrUnsupportedPath = errors.New("unsupported store path depth")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)

// Join builds a path from segments.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Segments splits a path into its segments. Leading and trailing slashes
// are ignored.
func Segments(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, ErrInvalidPath
	}
	segments := strings.Split(trimmed, "/")
	for _, s := range segments {
		if !ValidKey(s) {
			return nil, ErrInvalidPath
		}
	}
	return segments, nil
}

// ValidKey reports whether key can name a single child: non-blank, no
// slash and not a dot segment.
func ValidKey(key string) bool {
	switch {
	case strings.TrimSpace(key) == "":
		return false
	case strings.Contains(key, "/"):
		return false
	case key == "." || key == "..":
		return false
	}
	return true
}

// Split splits a collection path or a collection/key path. The key is
// empty for a collection path.
func Split(path string) (collection, key string, err error) {
	segments, err := Segments(path)
	if err != nil {
		return "", "", err
	}
	switch len(segments) {
	case 1:
		return segments[0], "", nil
	case 2:
		return segments[0], segments[1], nil
	default:
		return "", "", ErrUnsupportedPath
	}
}

// Base returns the last segment of a path.
func Base(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
