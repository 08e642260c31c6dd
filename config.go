package locator

import (
	"github.com/junioryono/locator/internal/configtree"
)

// RegisterConfigs replaces the whole config tree of scope. Only Request and
// Global hold configuration; other scopes are ignored.
func (c *Container) RegisterConfigs(tree map[string]any, scope Scope) {
	if !scope.Cacheable() {
		return
	}

	normalized := configtree.NormalizeTree(tree)
	if normalized == nil {
		normalized = make(configtree.Tree)
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.configs[scope] = normalized
}

// GetConfigs returns the effective configuration: the Global tree recursively
// overridden by the Request tree. The result is a copy.
func (c *Container) GetConfigs() map[string]any {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return c.effective()
}

// RegisterConfig sets the value at a dot-separated path in scope, creating
// intermediate levels. Descending through an existing scalar or nil value
// fails with a ContainerError wrapping ConfigKeyExistsError.
//
//	_ = c.RegisterConfig("db.primary.dsn", dsn, locator.Global)
func (c *Container) RegisterConfig(path string, value any, scope Scope) error {
	if !scope.Cacheable() {
		return nil
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if err := configtree.Set(c.s.configs[scope], path, value); err != nil {
		return ContainerError{Key: path, Cause: err}
	}

	return nil
}

// GetConfig reads a dot-separated path from the effective configuration and
// returns def as soon as a segment is missing or nil.
func (c *Container) GetConfig(path string, def any) any {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	if v, ok := configtree.Get(c.effective(), path); ok {
		return v
	}
	return def
}

// mergeConfigs merges tree into the existing tree of scope.
func (c *Container) mergeConfigs(tree map[string]any, scope Scope) {
	if !scope.Cacheable() {
		return
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.configs[scope] = configtree.Merge(c.s.configs[scope], configtree.NormalizeTree(tree))
}

// effective must be called with the state lock held.
func (c *Container) effective() configtree.Tree {
	return configtree.Merge(c.s.configs[Global], c.s.configs[Request])
}
