package locator

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Container) error

// NewModule creates a new module with the given name and builders.
// Modules are a way to group related registrations together.
//
// Example:
//
//	var DatabaseModule = locator.NewModule("database",
//	    locator.Singleton("db", openDatabase),
//	    locator.Type(NewUserRepository),
//	    locator.ConfigValue("db.pool", 10, locator.Global),
//	)
//
//	var AppModule = locator.NewModule("app",
//	    DatabaseModule,
//	    locator.RequestProducer("user", currentUser),
//	    locator.Type(NewUserService, locator.WithDefault(1, 30*time.Second)),
//	)
//
//	if err := c.Install(AppModule); err != nil {
//	    return err
//	}
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(c *Container) error {
		// Execute all builders in order
		for _, builder := range builders {
			if builder == nil {
				continue
			}

			if err := builder(c); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// Install applies modules in order and stops at the first failure.
// Registrations made before the failure are kept.
func (c *Container) Install(modules ...ModuleOption) error {
	for _, m := range modules {
		if m == nil {
			continue
		}
		if err := m(c); err != nil {
			return err
		}
	}
	return nil
}

// Singleton creates a ModuleOption registering producer in the Global scope.
func Singleton(key string, producer any) ModuleOption {
	return func(c *Container) error {
		return c.RegisterSingletonProducer(key, producer)
	}
}

// RequestProducer creates a ModuleOption registering producer in the Request scope.
func RequestProducer(key string, producer any) ModuleOption {
	return func(c *Container) error {
		return c.RegisterRequestProducer(key, producer)
	}
}

// Provide creates a ModuleOption registering producer in scope.
func Provide(key string, producer any, scope Scope) ModuleOption {
	return func(c *Container) error {
		return c.RegisterProducer(key, producer, scope)
	}
}

// Instance creates a ModuleOption registering a pre-built instance.
func Instance(key string, instance any, scope Scope) ModuleOption {
	return func(c *Container) error {
		c.RegisterInstance(key, instance, scope)
		return nil
	}
}

// Type creates a ModuleOption defining the type built by ctor.
func Type(ctor any, opts ...TypeOption) ModuleOption {
	return func(c *Container) error {
		return c.DefineType(ctor, opts...)
	}
}

// ConfigValue creates a ModuleOption setting a config path.
func ConfigValue(path string, value any, scope Scope) ModuleOption {
	return func(c *Container) error {
		return c.RegisterConfig(path, value, scope)
	}
}
