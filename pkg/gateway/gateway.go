// Package gateway maps catalog records onto a collection of a hierarchical
// key-value store: list-all, create, update-by-key and delete-by-key.
package gateway

import (
	"context"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/items"
	"github.com/agentstation/retroshelf/pkg/logging"
	"github.com/agentstation/retroshelf/pkg/store"
)

const resource = "item"

// Gateway reads and writes records under one collection.
type Gateway struct {
	store      store.Store
	collection string
	logger     *zerolog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCollection sets the collection name. Default is "items".
func WithCollection(name string) Option {
	return func(g *Gateway) {
		if name != "" {
			g.collection = name
		}
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New creates a gateway over s.
func New(s store.Store, opts ...Option) *Gateway {
	g := &Gateway{
		store:      s,
		collection: constants.DefaultCollection,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Collection returns the collection name.
func (g *Gateway) Collection() string {
	return g.collection
}

// Store returns the underlying store.
func (g *Gateway) Store() store.Store {
	return g.store
}

// List returns every record sorted by title. A missing collection is an
// empty catalog. Any read or decode failure is a *errors.LoadError.
func (g *Gateway) List(ctx context.Context) ([]items.Item, error) {
	log := g.log(ctx)

	snap, err := g.store.Get(ctx, g.collection)
	if err != nil {
		return nil, errors.NewLoadError(g.collection, err)
	}

	children, err := snap.Children()
	if err != nil {
		return nil, errors.NewLoadError(g.collection, err)
	}

	// Keys are visited in store order, creation order for pushed keys, so
	// records with equal titles keep a stable order across loads.
	list := make([]items.Item, 0, len(children))
	for _, key := range slices.Sorted(maps.Keys(children)) {
		raw := children[key]
		doc, unknown, err := items.DecodeDocument(raw)
		if err != nil {
			return nil, errors.NewLoadError(g.collection,
				errors.NewParseError("json", store.Join(g.collection, key), "malformed entry", err))
		}
		if len(unknown) > 0 {
			log.Debug().
				Str("item_id", key).
				Strs("fields", unknown).
				Msg("Ignoring unknown fields")
		}

		it := items.FromDocument(key, doc)
		if !it.HasYear() {
			log.Warn().Str("item_id", key).Msg("Stored entry has no numeric year")
		}
		list = append(list, it)
	}

	items.SortByTitle(list)

	log.Debug().Int("count", len(list)).Msg("Listed items")
	return list, nil
}

// Get returns the record stored under id.
func (g *Gateway) Get(ctx context.Context, id string) (items.Item, error) {
	if err := checkID(id); err != nil {
		return items.Item{}, err
	}

	snap, err := g.store.Get(ctx, store.Join(g.collection, id))
	if err != nil {
		return items.Item{}, errors.WrapResource("get", resource, id, err)
	}
	if !snap.Exists() {
		return items.Item{}, errors.NewNotFoundError(resource, id)
	}

	doc, _, err := items.DecodeDocument(snap.Raw())
	if err != nil {
		return items.Item{}, errors.WrapResource("get", resource, id, err)
	}
	return items.FromDocument(id, doc), nil
}

// Create writes the record under a newly generated key and returns it.
// The record's own ID is ignored.
func (g *Gateway) Create(ctx context.Context, it items.Item) (string, error) {
	ref := store.Push(g.store, g.collection)
	if err := ref.Set(ctx, it.Document()); err != nil {
		return "", errors.WrapResource("create", resource, "", err)
	}

	g.log(ctx).Info().Str("item_id", ref.Key()).Str("title", it.Title).Msg("Created item")
	return ref.Key(), nil
}

// Update merges the record's fields into the entry under id. Fields the
// record does not carry are left as stored.
func (g *Gateway) Update(ctx context.Context, id string, it items.Item) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := g.store.Update(ctx, store.Join(g.collection, id), it.Fields()); err != nil {
		return errors.WrapResource("update", resource, id, err)
	}

	g.log(ctx).Info().Str("item_id", id).Str("title", it.Title).Msg("Updated item")
	return nil
}

// Delete removes the entry under id. Deleting a missing entry succeeds.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := g.store.Remove(ctx, store.Join(g.collection, id)); err != nil {
		return errors.WrapResource("delete", resource, id, err)
	}

	g.log(ctx).Info().Str("item_id", id).Msg("Deleted item")
	return nil
}

// Replace removes every entry and writes the given records under fresh
// keys. It returns the generated keys in input order.
func (g *Gateway) Replace(ctx context.Context, list []items.Item) ([]string, error) {
	if err := g.store.Remove(ctx, g.collection); err != nil {
		return nil, errors.WrapResource("delete", "collection", g.collection, err)
	}
	keys := make([]string, 0, len(list))
	for _, it := range list {
		key, err := g.Create(ctx, it)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// checkID rejects ids that do not name exactly one child of the
// collection.
func checkID(id string) error {
	if id == "" {
		return errors.NewValidationError("itemId", id, "item id is required")
	}
	if !store.ValidKey(id) {
		return errors.NewValidationError("itemId", id, "item id must be a single key")
	}
	return nil
}

func (g *Gateway) log(ctx context.Context) *zerolog.Logger {
	if logger := logging.FromContext(ctx); logger != logging.Default() || g.logger == nil {
		return logger
	}
	return g.logger
}
