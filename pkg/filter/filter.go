// Package filter derives the category and platform vocabularies of a
// catalog and narrows it by two optional equality predicates.
package filter

import (
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/agentstation/retroshelf/pkg/items"
)

// Query parameter names. The Portuguese names match the HTML selects.
const (
	ParamCategory = "categoria"
	ParamPlatform = "plataforma"

	paramCategoryAlias = "category"
	paramPlatformAlias = "platform"
)

// Vocabulary holds the distinct values offered by the filter controls.
type Vocabulary struct {
	Categories []string `json:"categorias" yaml:"categorias"`
	Platforms  []string `json:"plataformas" yaml:"plataformas"`
}

// Facets returns the distinct non-empty categories and platforms, each
// sorted by plain string comparison.
func Facets(list []items.Item) Vocabulary {
	return Vocabulary{
		Categories: distinct(list, func(it items.Item) string { return it.Category }),
		Platforms:  distinct(list, func(it items.Item) string { return it.Platform }),
	}
}

func distinct(list []items.Item, field func(items.Item) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range list {
		v := field(it)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Filter selects records by category and platform. An empty value means
// no constraint.
type Filter struct {
	Category string `json:"categoria,omitempty" yaml:"categoria,omitempty"`
	Platform string `json:"plataforma,omitempty" yaml:"plataforma,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Category == "" && f.Platform == ""
}

// Match reports whether a record passes the filter.
func (f Filter) Match(it items.Item) bool {
	return (f.Category == "" || it.Category == f.Category) &&
		(f.Platform == "" || it.Platform == f.Platform)
}

// Apply returns the records passing the filter in their original order.
// The result is never nil.
func (f Filter) Apply(list []items.Item) []items.Item {
	out := make([]items.Item, 0, len(list))
	for _, it := range list {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Reconcile clears any selection that is no longer offered by v.
func (f Filter) Reconcile(v Vocabulary) Filter {
	if f.Category != "" && !slices.Contains(v.Categories, f.Category) {
		f.Category = ""
	}
	if f.Platform != "" && !slices.Contains(v.Platforms, f.Platform) {
		f.Platform = ""
	}
	return f
}

// Values encodes the filter as query parameters.
func (f Filter) Values() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set(ParamCategory, f.Category)
	}
	if f.Platform != "" {
		q.Set(ParamPlatform, f.Platform)
	}
	return q
}

// FromQuery reads a filter from query parameters.
func FromQuery(q url.Values) Filter {
	return Filter{
		Category: first(q, ParamCategory, paramCategoryAlias),
		Platform: first(q, ParamPlatform, paramPlatformAlias),
	}
}

func first(q url.Values, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
