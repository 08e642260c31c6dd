package locator

import (
	"fmt"
	"math"
)

// Get resolves key strictly and asserts the result to T.
//
//	db, err := locator.Get[*sql.DB](c, "db")
func Get[T any](c *Container, key string) (T, error) {
	var zero T

	instance, err := c.Get(key)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ContainerError{
			Key:   key,
			Cause: fmt.Errorf("resolved %T, want %s", instance, TypeNameOf[T]()),
		}
	}

	return typed, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](c *Container, key string) T {
	v, err := Get[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}

// Resolve resolves T by its own type name, autowiring it when no producer or
// instance is registered for that name.
//
//	svc, err := locator.Resolve[*UserService](c)
func Resolve[T any](c *Container) (T, error) {
	return Get[T](c, TypeNameOf[T]())
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// Config reads path from the effective configuration as T, returning def when
// the path is missing or holds a value of another type. Decoded numbers are
// converted between int, int64 and float64 when no precision is lost:
// 3.0 reads as int 3, 3.9 and out-of-range values fall back to def.
func Config[T any](c *Container, path string, def T) T {
	raw := c.GetConfig(path, nil)
	if raw == nil {
		return def
	}

	if v, ok := raw.(T); ok {
		return v
	}

	if v, ok := convertNumber[T](raw); ok {
		return v
	}

	return def
}

func convertNumber[T any](raw any) (T, bool) {
	var zero T

	var (
		i       int64
		f       float64
		integer bool
	)

	switch n := raw.(type) {
	case int:
		i, integer = int64(n), true
	case int64:
		i, integer = n, true
	case uint64:
		if n > math.MaxInt64 {
			return zero, false
		}
		i, integer = int64(n), true
	case float64:
		f = n
	default:
		return zero, false
	}

	var out any
	switch any(zero).(type) {
	case int:
		if !integer {
			var ok bool
			if i, ok = wholeNumber(f); !ok {
				return zero, false
			}
		}
		if i < math.MinInt || i > math.MaxInt {
			return zero, false
		}
		out = int(i)
	case int64:
		if !integer {
			var ok bool
			if i, ok = wholeNumber(f); !ok {
				return zero, false
			}
		}
		out = i
	case float64:
		if integer {
			f = float64(i)
		}
		out = f
	default:
		return zero, false
	}

	return out.(T), true
}

// wholeNumber converts f when it is integral and fits in an int64.
func wholeNumber(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}
