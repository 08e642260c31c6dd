package locator

import (
	"go.uber.org/zap"

	"github.com/junioryono/locator/internal/reflection"
)

// Factory builds a value for a key. It receives a container handle it may use
// to resolve further keys. Returning a string continues resolution with that
// string as the key; returning nil means "not found".
type Factory func(c *Container) (any, error)

// Producer is a pre-built object that produces a value on demand. Its result
// is returned as is: strings are not followed as aliases.
type Producer interface {
	Produce() (any, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func() (any, error)

// Produce calls f.
func (f ProducerFunc) Produce() (any, error) {
	return f()
}

type producerKind int

const (
	aliasProducer producerKind = iota
	factoryProducer
	produceProducer
)

// producer is the normalized form of a registered producer value.
type producer struct {
	kind    producerKind
	alias   string
	factory Factory
	produce Producer
	raw     any
}

// newProducer normalizes value. The boolean is false for empty values, which
// registration silently ignores.
func newProducer(key string, value any) (producer, bool, error) {
	if reflection.IsNil(value) {
		return producer{}, false, nil
	}

	p := producer{raw: value}

	switch v := value.(type) {
	case string:
		if v == "" {
			return producer{}, false, nil
		}
		p.kind = aliasProducer
		p.alias = v
	case Factory:
		p.kind = factoryProducer
		p.factory = v
	case func(*Container) (any, error):
		p.kind = factoryProducer
		p.factory = v
	case func(*Container) any:
		p.kind = factoryProducer
		p.factory = func(c *Container) (any, error) { return v(c), nil }
	case func() any:
		p.kind = factoryProducer
		p.factory = func(*Container) (any, error) { return v(), nil }
	case Producer:
		p.kind = produceProducer
		p.produce = v
	default:
		return producer{}, false, InvalidProducerError{Key: key, Producer: value}
	}

	return p, true, nil
}

// RegisterProducer stores value as the producer of key in scope.
//
// Accepted producers are a string (type name or alias key), a Factory (also
// func(*Container) any and func() any) or a Producer. Empty producers and
// unknown scopes are ignored. Re-registration overwrites.
func (c *Container) RegisterProducer(key string, value any, scope Scope) error {
	p, ok, err := newProducer(key, value)
	if err != nil {
		return err
	}

	if !ok {
		c.s.logger.Debug("ignoring empty producer", zap.String("key", key))
		return nil
	}

	if !scope.IsValid() {
		c.s.logger.Debug("ignoring producer with unknown scope",
			zap.String("key", key), zap.Stringer("scope", scope))
		return nil
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	c.s.producers[scope][key] = p
	if scope.Cacheable() {
		c.s.marks[scope][key] = true
	}

	return nil
}

// RegisterSingletonProducer registers value in the Global scope.
func (c *Container) RegisterSingletonProducer(key string, value any) error {
	return c.RegisterProducer(key, value, Global)
}

// RegisterRequestProducer registers value in the Request scope.
func (c *Container) RegisterRequestProducer(key string, value any) error {
	return c.RegisterProducer(key, value, Request)
}

// GetProducer returns the producer registered for key, scanning Request,
// Global then Prototype. The returned value is the one given at registration.
func (c *Container) GetProducer(key string) (any, bool) {
	p, ok := c.producer(key)
	if !ok {
		return nil, false
	}
	return p.raw, true
}

func (c *Container) producer(key string) (producer, bool) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	for _, scope := range precedence {
		if p, ok := c.s.producers[scope][key]; ok {
			return p, true
		}
	}

	return producer{}, false
}
