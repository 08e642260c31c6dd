package locator

import "sync"

var (
	defaultMu        sync.Mutex
	defaultContainer *Container
)

// Default returns the process-wide container, creating it on first use.
// Prefer passing a *Container explicitly; Default exists for code that cannot
// receive one, such as package-level helpers and legacy entry points.
func Default() *Container {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultContainer == nil {
		defaultContainer = New()
	}

	return defaultContainer
}

// SetDefault replaces the process-wide container. This is similar to
// slog.SetDefault. Passing nil makes the next Default call create a fresh one.
func SetDefault(c *Container) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if c != nil {
		c = c.Root()
	}
	defaultContainer = c
}
