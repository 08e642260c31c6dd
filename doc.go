// Package locator provides a scoped service locator with constructor
// autowiring and a scope-aware configuration store.
//
// # Overview
//
// Values are registered under string keys, either directly as instances or
// through producers, and resolved on demand:
//   - Three scopes: Prototype (never cached), Request (cached until
//     ResetRequestScope) and Global (cached until Reset)
//   - Producers: type names and alias keys, factories, and Producer objects
//   - Constructor autowiring for defined types, with parameter defaults
//   - Cycle detection on every call path
//   - Nested configuration addressed by dot paths, merged across scopes
//
// # Basic Usage
//
//	c := locator.New()
//
//	_ = c.RegisterSingletonProducer("clock", func(*locator.Container) (any, error) {
//	    return realClock{}, nil
//	})
//	_ = c.RegisterProducer("mailer", "smtp", locator.Prototype) // alias
//
//	clock, err := locator.Get[Clock](c, "clock")
//
// # Scopes
//
// Lookups scan Request, then Global, then Prototype. A value resolved through
// a producer registered in Request or Global is cached in that scope, so
// subsequent calls return the identical value. Prototype producers run on
// every call.
//
// A host that serves one unit of work at a time calls ResetRequestScope
// between units; see the chi subpackage for an HTTP middleware doing so.
//
// # Autowiring
//
// Types are made known with DefineType (constructor) or Define (zero value):
//
//	_ = c.DefineType(NewRepository)
//	_ = c.DefineType(NewService, locator.WithDefault(1, 30*time.Second))
//
//	svc, err := locator.Resolve[*Service](c)
//
// Constructor parameters are resolved in declaration order by type name.
// Interface, struct and pointer-to-struct parameters are looked up; other
// parameters, and lookups that yield nothing, fall back to the declared
// default. A parameter without default makes the type unresolvable.
//
// # Modules
//
// Related registrations can be grouped and installed together:
//
//	var Storage = locator.NewModule("storage",
//	    locator.Singleton("db", openDB),
//	    locator.Type(NewRepository),
//	)
//
//	err := c.Install(Storage)
//
// # Configuration
//
//	_ = c.RegisterConfig("db.dsn", "postgres://...", locator.Global)
//	_ = c.LoadConfigFile("config.yaml", locator.Global)
//	dsn := locator.Config(c, "db.dsn", "")
//
// Request configuration overrides Global configuration leaf by leaf.
//
// # Errors
//
// Strict lookups (Get, GetInstance with strict set) fail with a
// NotFoundError. Misconfiguration fails with a ContainerError; match either
// with IsNotFound and IsContainerError.
//
// # Concurrency
//
// The container guards its maps, but the check, resolve, cache sequence is
// not atomic: two goroutines resolving the same uncached key may both run its
// producer. The Request scope is shared by all goroutines; hosts serving
// requests concurrently must serialize them or avoid the Request scope.
package locator
