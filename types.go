package locator

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/junioryono/locator/internal/reflection"
	"github.com/junioryono/locator/internal/registry"
)

// TypeOption configures a type definition.
type TypeOption func(*typeOptions)

type typeOptions struct {
	defaults map[int]any
}

// WithDefault declares the value passed for constructor parameter index when
// that parameter cannot be resolved from the container. A nil value stands
// for the parameter type's zero value.
func WithDefault(index int, value any) TypeOption {
	return func(o *typeOptions) {
		if o.defaults == nil {
			o.defaults = make(map[int]any)
		}
		o.defaults[index] = value
	}
}

// TypeNameOf returns the name under which T is defined and autowired.
//
//	locator.TypeNameOf[*Database]()  // "*example.com/app/db.Database"
//	locator.TypeNameOf[Logger]()     // "example.com/app/log.Logger"
func TypeNameOf[T any]() string {
	return reflection.TypeName(reflect.TypeOf((*T)(nil)).Elem())
}

// DefineType makes the type returned by ctor known to the container. The
// type is then resolvable by its name (see TypeNameOf) and its constructor
// parameters are autowired.
//
// Constructors must have the shape func(...) T or func(...) (T, error).
// Parameters are resolved in declaration order; interface, struct and
// pointer-to-struct parameters are looked up by type name, any other
// parameter needs a default declared with WithDefault.
//
// Defining a type again replaces the earlier definition.
func (c *Container) DefineType(ctor any, opts ...TypeOption) error {
	if ctor == nil {
		return ErrConstructorNil
	}

	info, err := c.s.analyzer.Analyze(ctor)
	if err != nil {
		return TypeDefinitionError{Type: reflect.TypeOf(ctor), Reason: err.Error()}
	}

	def := &registry.Definition{
		Name:        reflection.TypeName(info.Result),
		Type:        info.Result,
		Constructor: info,
	}

	if err := applyTypeOptions(def, opts); err != nil {
		return err
	}

	c.s.types.Add(def)
	c.s.logger.Debug("defined type",
		zap.String("type", def.Name),
		zap.Int("params", len(info.Parameters)),
		zap.Int("defined", c.s.types.Len()))

	return nil
}

// Define makes T known to the container without a constructor. Resolving it
// yields T's zero value, or a freshly allocated struct when T is a pointer.
// Interfaces can be defined but are not instantiable.
func Define[T any](c *Container) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if !reflection.IsClassLike(t) {
		return TypeDefinitionError{Type: t, Reason: "only named interfaces, structs and pointers to structs can be defined"}
	}

	c.s.types.Add(&registry.Definition{
		Name: reflection.TypeName(t),
		Type: t,
	})

	return nil
}

// Undefine removes the definition of typeName. Cached instances and producers
// registered under that name are kept.
func (c *Container) Undefine(typeName string) {
	c.s.types.Remove(typeName)
	c.s.logger.Debug("undefined type", zap.String("type", typeName))
}

// IsDefined reports whether typeName has a definition.
func (c *Container) IsDefined(typeName string) bool {
	_, ok := c.s.types.Get(typeName)
	return ok
}

// DefinedTypes returns the names of every defined type, sorted.
func (c *Container) DefinedTypes() []string {
	defs := c.s.types.All()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

func applyTypeOptions(def *registry.Definition, opts []TypeOption) error {
	o := &typeOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if len(o.defaults) == 0 {
		return nil
	}

	params := def.Constructor.Parameters
	def.Defaults = make(map[int]reflect.Value, len(o.defaults))

	for index, value := range o.defaults {
		if index < 0 || index >= len(params) {
			return TypeDefinitionError{
				Type:   def.Type,
				Reason: fmt.Sprintf("default for parameter %d out of range (constructor has %d)", index, len(params)),
			}
		}

		pt := params[index].Type
		if value == nil {
			def.Defaults[index] = reflect.Zero(pt)
			continue
		}

		v := reflect.ValueOf(value)
		switch {
		case v.Type().AssignableTo(pt):
		case isNumeric(v.Kind()) && isNumeric(pt.Kind()):
			v = v.Convert(pt)
		default:
			return TypeDefinitionError{
				Type:   def.Type,
				Reason: fmt.Sprintf("default %T for parameter %d is not assignable to %v", value, index, pt),
			}
		}

		def.Defaults[index] = v
	}

	return nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
