package locator

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junioryono/locator/internal/configtree"
	"github.com/junioryono/locator/internal/reflection"
	"github.com/junioryono/locator/internal/registry"
)

// Locator is the minimal lookup-by-id contract. The container registers
// itself under this interface's type name so it can be injected.
type Locator interface {
	// Get resolves id and fails with a NotFoundError when nothing is produced.
	Get(id string) (any, error)

	// Has reports whether id resolves to a non-empty value.
	Has(id string) bool
}

var _ Locator = (*Container)(nil)

// Container holds producers, cached instances and configuration for the three
// scopes, and resolves keys on demand.
//
// A Container value is a handle: handles passed to factories share state with
// the container that created them and additionally remember which keys are
// being resolved on the current call path, which is how indirect cycles are
// detected. That memory only lasts while the call is running; a handle kept
// past it behaves like the root.
type Container struct {
	s     *state
	trail *trail
}

// trail is the set of keys in resolution on one call path.
type trail struct {
	keys   []string
	active atomic.Bool
}

// live returns the keys while the owning call is running, nil afterwards.
func (t *trail) live() []string {
	if t == nil || !t.active.Load() {
		return nil
	}
	return t.keys
}

func (t *trail) release() {
	if t != nil {
		t.active.Store(false)
	}
}

// state is the storage shared by every handle of one container.
type state struct {
	mu sync.RWMutex

	producers map[Scope]map[string]producer
	instances map[Scope]map[string]any
	marks     map[Scope]map[string]bool // (scope, key) has a cacheable producer
	configs   map[Scope]configtree.Tree
	requestID string

	// Type definitions are not part of the resettable state.
	types    *registry.Registry
	analyzer *reflection.Analyzer

	opts   *options
	logger *zap.Logger
	root   *Container
}

// New creates a container and seeds its self-reference.
//
// Example:
//
//	c := locator.New(locator.WithLogger(logger))
//	_ = c.RegisterSingletonProducer("clock", func(*locator.Container) (any, error) {
//	    return clock.New(), nil
//	})
func New(opts ...Option) *Container {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	s := &state{
		types:    registry.New(),
		analyzer: reflection.New(),
		opts:     o,
		logger:   o.logger,
	}

	c := &Container{s: s}
	s.root = c
	c.Reset()

	return c
}

// Root returns the handle created by New, without resolution trail.
func (c *Container) Root() *Container {
	return c.s.root
}

// RequestID identifies the current unit of work. It changes on every
// ResetRequestScope.
func (c *Container) RequestID() string {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return c.s.requestID
}

// Logger returns the container's logger with the current request ID attached.
func (c *Container) Logger() *zap.Logger {
	return c.s.logger.With(zap.String("request_id", c.RequestID()))
}

func newRequestID() string {
	return uuid.NewString()
}

// newTiers allocates one map per scope.
func newTiers[V any]() map[Scope]map[string]V {
	tiers := make(map[Scope]map[string]V, len(precedence))
	for _, s := range precedence {
		tiers[s] = make(map[string]V)
	}
	return tiers
}
