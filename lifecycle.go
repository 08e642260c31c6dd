package locator

import (
	"go.uber.org/zap"

	"github.com/junioryono/locator/internal/configtree"
)

// Reset clears producers, instances, cache marks and configuration of every
// scope, then registers the container under the type names of *Container and
// Locator so it can be injected as a dependency. Type definitions are kept.
func (c *Container) Reset() {
	c.s.mu.Lock()
	c.s.producers = newTiers[producer]()
	c.s.instances = newTiers[any]()
	c.s.marks = newTiers[bool]()
	c.s.configs = map[Scope]configtree.Tree{
		Request: make(configtree.Tree),
		Global:  make(configtree.Tree),
	}
	c.s.requestID = newRequestID()
	c.s.mu.Unlock()

	root := c.s.root
	root.RegisterInstance(TypeNameOf[*Container](), root, Global)
	root.RegisterInstance(TypeNameOf[Locator](), root, Global)

	c.s.logger.Debug("container reset")
}

// ResetRequestScope clears the Request tier only: producers, instances,
// cache marks and configuration. Global and Prototype state is untouched.
// Call it between units of work in a serial request loop.
func (c *Container) ResetRequestScope() {
	c.s.mu.Lock()
	previous := c.s.requestID
	c.s.producers[Request] = make(map[string]producer)
	c.s.instances[Request] = make(map[string]any)
	c.s.marks[Request] = make(map[string]bool)
	c.s.configs[Request] = make(configtree.Tree)
	c.s.requestID = newRequestID()
	c.s.mu.Unlock()

	c.s.logger.Debug("request scope reset", zap.String("request_id", previous))
}
