// Package controller owns the application state and orchestrates loading,
// filtering and mutations of the catalog.
package controller

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
	"github.com/agentstation/retroshelf/pkg/logging"
)

// Gateway is the persistence the controller drives.
type Gateway interface {
	List(ctx context.Context) ([]items.Item, error)
	Get(ctx context.Context, id string) (items.Item, error)
	Create(ctx context.Context, it items.Item) (string, error)
	Update(ctx context.Context, id string, it items.Item) error
	Delete(ctx context.Context, id string) error
}

// Controller serializes access to the application state.
//
// Loads are single-flight: concurrent Load calls share one List. Every
// mutation bumps a generation counter, and a load result is only applied
// when no load of a later generation has been applied already.
type Controller struct {
	gateway  Gateway
	forms    *form.Controller
	notifier Notifier
	logger   *zerolog.Logger

	mu      sync.RWMutex
	state   State
	applied uint64

	generation atomic.Uint64
	group      singleflight.Group
	now        func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier registers the change notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithFilter sets the initial filter.
func WithFilter(f filter.Filter) Option {
	return func(c *Controller) {
		c.state.Filter = f
	}
}

// New creates a controller in the Idle state.
func New(g Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway: g,
		forms:   form.NewController(g),
		logger:  logging.Default(),
		now:     time.Now,
		state: State{
			Items:  []items.Item{},
			View:   []items.Item{},
			Status: StatusIdle,
			Vocabulary: filter.Vocabulary{
				Categories: []string{},
				Platforms:  []string{},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetNotifier replaces the change notifier.
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Status returns the current lifecycle status.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Status
}

// Generation returns the current mutation generation.
func (c *Controller) Generation() uint64 {
	return c.generation.Load()
}

// Load fetches the full catalog. On success the vocabularies are derived,
// the filter reconciled and applied and the state becomes Loaded. On
// failure the state becomes LoadError and the loaded records are kept.
//
// The shared List runs detached from the caller's cancellation and applies
// its own result, so a caller that gives up returns ctx.Err() without
// failing the others or leaving the state in Loading.
func (c *Controller) Load(ctx context.Context) error {
	gen := c.generation.Load()

	c.mu.Lock()
	if gen >= c.applied {
		c.state.Status = StatusLoading
	}
	c.mu.Unlock()

	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		list, err := c.gateway.List(loadCtx)
		return nil, c.apply(loadCtx, gen, list, err)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.log(ctx).Debug().Uint64("generation", gen).Msg("Shared in-flight load")
		}
		return res.Err
	}
}

// apply installs the result of the load of generation gen unless a later
// generation has been applied already.
func (c *Controller) apply(ctx context.Context, gen uint64, list []items.Item, err error) error {
	log := c.log(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < c.applied {
		log.Debug().
			Uint64("generation", gen).
			Uint64("applied", c.applied).
			Msg("Discarding stale load")
		return nil
	}
	c.applied = gen

	if err != nil {
		if !errors.IsLoadError(err) {
			err = errors.NewLoadError("items", err)
		}
		c.state.Status = StatusLoadError
		c.state.Err = err
		log.Error().Err(err).Msg("Failed to load items")
		return err
	}

	next := State{
		Items:      cloneItems(list),
		Vocabulary: filter.Facets(list),
		Status:     StatusLoaded,
		LoadedAt:   c.now(),
	}
	next.Filter = c.state.Filter.Reconcile(next.Vocabulary)
	next.View = next.Filter.Apply(next.Items)
	c.state = next

	log.Debug().
		Int("count", len(list)).
		Uint64("generation", gen).
		Msg("Loaded items")
	return nil
}

// Reload loads the catalog and announces it.
func (c *Controller) Reload(ctx context.Context) error {
	if err := c.Load(ctx); err != nil {
		return err
	}
	c.notify(ctx, Change{Kind: ChangeReloaded, Count: len(c.Snapshot().Items)})
	return nil
}

// SetFilter narrows the loaded catalog. No store call is made.
func (c *Controller) SetFilter(f filter.Filter) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Filter = f
	c.state.View = f.Apply(c.state.Items)
	return c.state.clone()
}

// Get returns a record from the loaded catalog, falling back to the store
// when it is not there.
func (c *Controller) Get(ctx context.Context, id string) (items.Item, error) {
	if it, ok := c.Snapshot().Find(id); ok {
		return it, nil
	}
	return c.gateway.Get(ctx, id)
}

// Create validates and stores a new record, then reloads.
func (c *Controller) Create(ctx context.Context, it items.Item) (string, error) {
	if err := it.Validate(); err != nil {
		return "", err
	}
	id, err := c.gateway.Create(ctx, it)
	if err != nil {
		return "", err
	}
	c.afterMutation(ctx, Change{Kind: ChangeCreated, ID: id, Item: it.WithID(id)})
	return id, nil
}

// Update validates and merges a record into the entry under id, then
// reloads.
func (c *Controller) Update(ctx context.Context, id string, it items.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if err := c.gateway.Update(ctx, id, it); err != nil {
		return err
	}
	c.afterMutation(ctx, Change{Kind: ChangeUpdated, ID: id, Item: it.WithID(id)})
	return nil
}

// Delete removes the entry under id, then reloads.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.gateway.Delete(ctx, id); err != nil {
		return err
	}
	c.afterMutation(ctx, Change{Kind: ChangeDeleted, ID: id})
	return nil
}

// Submit saves a submitted form, then reloads.
func (c *Controller) Submit(ctx context.Context, v form.Values) (form.Result, error) {
	res, err := c.forms.Submit(ctx, v)
	if err != nil {
		return res, err
	}

	kind := ChangeUpdated
	if res.Created {
		kind = ChangeCreated
	}
	c.afterMutation(ctx, Change{Kind: kind, ID: res.ID, Item: v.Item().WithID(res.ID)})
	return res, nil
}

// afterMutation invalidates in-flight loads, reloads and notifies. A failed
// reload leaves the state in LoadError; the mutation itself succeeded.
func (c *Controller) afterMutation(ctx context.Context, change Change) {
	c.generation.Add(1)
	_ = c.Load(ctx)
	c.notify(ctx, change)
}

func (c *Controller) notify(ctx context.Context, change Change) {
	c.mu.RLock()
	n := c.notifier
	c.mu.RUnlock()

	if n != nil {
		n.Notify(ctx, change)
	}
}

func (c *Controller) log(ctx context.Context) *zerolog.Logger {
	if logger := logging.FromContext(ctx); logger != logging.Default() {
		return logger
	}
	return c.logger
}
