package locator

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/junioryono/locator/internal/reflection"
	"github.com/junioryono/locator/internal/registry"
)

// Resolve produces a value for key without consulting or filling the
// instance cache.
//
// Without a producer, key is treated as a type name and autowired. A string
// producer equal to key must be satisfiable by autowiring. Factories are
// invoked with a container handle; a string result is followed as a new key.
// Producer results are returned as is. Any other string producer is
// followed through GetInstance.
//
// A nil result with a nil error means nothing was produced.
func (c *Container) Resolve(key string) (any, error) {
	call, err := c.enter(key)
	if err != nil {
		return nil, err
	}
	defer call.trail.release()

	return call.resolve(key)
}

// ResolveClass builds the type defined under typeName, autowiring its
// constructor parameters. Unknown type names yield nil without error.
func (c *Container) ResolveClass(typeName string) (any, error) {
	call, err := c.enter(typeName)
	if err != nil {
		return nil, err
	}
	defer call.trail.release()

	return call.resolveClass(typeName)
}

// enter returns a handle whose trail includes key, or an error when key is
// already being resolved on this call path. The caller releases the returned
// trail once resolution of key is over.
func (c *Container) enter(key string) (*Container, error) {
	keys := c.trail.live()

	for i, k := range keys {
		if k == key {
			path := append([]string(nil), keys[i:]...)
			c.s.logger.Debug("circular dependency", zap.Strings("path", path))
			return nil, ContainerError{Key: key, Cause: CircularDependencyError{Node: key, Path: path}}
		}
	}

	if len(keys) >= c.s.opts.maxDepth {
		return nil, ContainerError{Key: key, Cause: fmt.Errorf("%w (%d)", ErrMaxDepth, c.s.opts.maxDepth)}
	}

	t := &trail{keys: make([]string, len(keys), len(keys)+1)}
	copy(t.keys, keys)
	t.keys = append(t.keys, key)
	t.active.Store(true)

	return &Container{s: c.s, trail: t}, nil
}

func (c *Container) resolve(key string) (any, error) {
	p, ok := c.producer(key)
	if !ok {
		return c.resolveClass(key)
	}

	switch p.kind {
	case aliasProducer:
		if p.alias == key {
			instance, err := c.resolveClass(key)
			if err != nil {
				return nil, err
			}
			if !isEmpty(instance) {
				return instance, nil
			}
			return nil, ContainerError{Key: key, Cause: ErrSelfProducer}
		}
		return c.GetInstance(p.alias, false)

	case factoryProducer:
		instance, err := p.factory(c)
		if err != nil {
			return nil, ResolutionError{Key: key, Cause: err}
		}

		if isEmpty(instance) {
			return nil, nil
		}

		alias, isAlias := instance.(string)
		if !isAlias {
			return instance, nil
		}

		if alias == key {
			return nil, ContainerError{Key: key, Cause: ErrProducerReturnedSelf}
		}
		return c.GetInstance(alias, false)

	case produceProducer:
		instance, err := p.produce.Produce()
		if err != nil {
			return nil, ResolutionError{Key: key, Cause: err}
		}
		if isEmpty(instance) {
			return nil, nil
		}
		return instance, nil
	}

	return nil, nil
}

// resolveClass autowires the definition registered under typeName.
//
// Parameters are filled in declaration order. A parameter that is not
// class-like, or that resolves to nothing, takes its declared default; a
// parameter without default makes the whole type unresolvable (nil result).
// With WithDefaultTruncation the first such default ends the walk instead.
func (c *Container) resolveClass(typeName string) (any, error) {
	def, ok := c.s.types.Get(typeName)
	if !ok {
		return nil, nil
	}

	if def.Abstract() {
		return nil, ContainerError{Key: typeName, Cause: ErrNotInstantiable}
	}

	if !def.HasConstructor() {
		return reflection.Instantiate(def.Type).Interface(), nil
	}

	params := def.Constructor.Parameters
	args := make([]reflect.Value, 0, len(params))

	for i, param := range params {
		var arg reflect.Value

		if param.ClassLike {
			if param.TypeName == typeName {
				return nil, ContainerError{Key: typeName, Cause: ErrSelfDependency}
			}

			instance, err := c.GetInstance(param.TypeName, false)
			if err != nil {
				return nil, err
			}

			if !isEmpty(instance) {
				arg = reflect.ValueOf(instance)
				if !arg.Type().AssignableTo(param.Type) {
					return nil, ContainerError{
						Key:   typeName,
						Cause: fmt.Errorf("parameter %d: %s resolved to %T, which is not assignable to %v", i, param.TypeName, instance, param.Type),
					}
				}
			}
		}

		if !arg.IsValid() {
			value, hasDefault := def.Default(i)
			if !hasDefault {
				c.s.logger.Debug("unresolvable constructor parameter",
					zap.String("type", typeName), zap.Int("param", i), zap.String("param_type", param.TypeName))
				return nil, nil
			}

			if c.s.opts.truncateDefaults {
				return c.construct(def, fillTrailing(def, args))
			}
			arg = value
		}

		args = append(args, arg)
	}

	return c.construct(def, args)
}

// fillTrailing completes args with declared defaults, or zero values for
// parameters without one.
func fillTrailing(def *registry.Definition, args []reflect.Value) []reflect.Value {
	params := def.Constructor.Parameters
	for i := len(args); i < len(params); i++ {
		if v, ok := def.Default(i); ok {
			args = append(args, v)
			continue
		}
		args = append(args, reflect.Zero(params[i].Type))
	}
	return args
}

// construct invokes the constructor of def, turning panics and returned
// errors into typed errors.
func (c *Container) construct(def *registry.Definition, args []reflect.Value) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = ConstructorPanicError{Type: def.Name, Panic: r}
		}
	}()

	results := def.Constructor.Value.Call(args)

	if def.Constructor.HasErrorReturn {
		if errVal := results[1]; !errVal.IsNil() {
			return nil, ConstructorInvocationError{Type: def.Name, Cause: errVal.Interface().(error)}
		}
	}

	return results[0].Interface(), nil
}
