package locator

import (
	"fmt"

	"go.uber.org/dig"
)

// FromDig returns a Producer that extracts T from a dig container. Use it to
// expose services wired by dig under a locator key.
//
//	_ = c.RegisterSingletonProducer("db", locator.FromDig[*sql.DB](dc))
func FromDig[T any](dc *dig.Container) Producer {
	return ProducerFunc(func() (any, error) {
		var out T
		if err := dc.Invoke(func(v T) { out = v }); err != nil {
			return nil, fmt.Errorf("dig: %w", err)
		}
		return out, nil
	})
}

// ProvideToDig makes key available to dig as a T. The key is resolved lazily,
// when dig first needs a T.
func ProvideToDig[T any](c *Container, key string, dc *dig.Container) error {
	root := c.Root()
	return dc.Provide(func() (T, error) {
		return Get[T](root, key)
	})
}
