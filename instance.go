package locator

import (
	"go.uber.org/zap"

	"github.com/junioryono/locator/internal/reflection"
)

// RegisterInstance stores instance under key, bypassing producers. Only the
// cacheable scopes hold instances; other scopes and nil instances are ignored.
func (c *Container) RegisterInstance(key string, instance any, scope Scope) {
	if !scope.Cacheable() {
		c.s.logger.Debug("ignoring instance outside a cacheable scope",
			zap.String("key", key), zap.Stringer("scope", scope))
		return
	}

	if reflection.IsNil(instance) {
		return
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.instances[scope][key] = instance
}

// GetInstance returns the value for key.
//
// Cached Request then Global instances are returned first. Otherwise the key
// is resolved and a non-empty result is cached in the highest cacheable scope
// holding a producer for key; keys without such a producer behave as
// prototypes. When nothing is produced GetInstance returns nil, or a
// NotFoundError if strict is set.
func (c *Container) GetInstance(key string, strict bool) (any, error) {
	if instance, ok := c.cached(key); ok {
		return instance, nil
	}

	scope, cache := c.cacheScope(key)

	instance, err := c.Resolve(key)
	if err != nil {
		return nil, err
	}

	if isEmpty(instance) {
		if strict {
			return nil, NotFoundError{Key: key}
		}
		return nil, nil
	}

	if cache {
		c.RegisterInstance(key, instance, scope)
		c.s.logger.Debug("cached instance",
			zap.String("key", key), zap.Stringer("scope", scope))
	}

	return instance, nil
}

// Get resolves id strictly.
func (c *Container) Get(id string) (any, error) {
	return c.GetInstance(id, true)
}

// Has reports whether id resolves to a non-empty value.
//
// Resolution errors count as absent: a misconfigured key (a self producer, an
// interface without instance) reports false rather than failing. The error is
// logged at debug level; call Get to see it.
func (c *Container) Has(id string) bool {
	instance, err := c.GetInstance(id, false)
	if err != nil {
		c.s.logger.Debug("has: resolution failed", zap.String("key", id), zap.Error(err))
		return false
	}
	return !isEmpty(instance)
}

func (c *Container) cached(key string) (any, bool) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	for _, scope := range cacheable {
		if instance, ok := c.s.instances[scope][key]; ok {
			return instance, true
		}
	}

	return nil, false
}

// cacheScope picks the tier a freshly resolved value for key is cached in.
func (c *Container) cacheScope(key string) (Scope, bool) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	for _, scope := range cacheable {
		marks := c.s.marks[scope]
		if c.s.opts.legacyCacheScope && len(marks) > 0 {
			return scope, true
		}
		if marks[key] {
			return scope, true
		}
	}

	return Prototype, false
}

// isEmpty reports whether v counts as "nothing produced".
func isEmpty(v any) bool {
	if s, ok := v.(string); ok {
		return s == ""
	}
	return reflection.IsNil(v)
}
