// Package chi connects a locator container to the Chi router.
//
// RequestScope turns every request into one unit of work: requests are served
// one at a time, request-scoped producers, instances and configuration are
// available while the handler runs, and the Request scope is reset once the
// handler returns.
//
// Example usage:
//
//	c := locator.New()
//	_ = c.DefineType(NewUserController)
//
//	r := chi.NewRouter()
//	r.Use(locatorchi.RequestScope(c))
//
//	r.Get("/users/{id}", locatorchi.Handle((*UserController).GetByID))
package chi

import (
	"net/http"
	"sync"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/junioryono/locator"
)

// Config holds the configuration for the request-scope middleware.
type Config struct {
	// ErrorHandler is called when a middleware function fails.
	// If nil, a default handler returning 500 Internal Server Error is used.
	ErrorHandler func(http.ResponseWriter, *http.Request, error)

	// Logger receives middleware errors. Defaults to the container's logger.
	Logger *zap.Logger

	// Concurrent disables request serialization. The Request scope is then
	// shared between in-flight requests, so only enable it when handlers do
	// not register request-scoped state.
	Concurrent bool

	// Middlewares are functions that run after the request scope is seeded.
	// They can register request producers, set request config, etc.
	Middlewares []func(*locator.Container, *http.Request) error
}

// Option configures the request-scope middleware.
type Option func(*Config)

// WithErrorHandler sets the error handler for middleware failures.
func WithErrorHandler(h func(http.ResponseWriter, *http.Request, error)) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

// WithLogger sets the logger used by the middleware.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithConcurrency lets requests run in parallel.
func WithConcurrency() Option {
	return func(c *Config) {
		c.Concurrent = true
	}
}

// WithMiddleware adds a function that runs after the request scope is seeded.
// Multiple middlewares are executed in the order they are added.
func WithMiddleware(mw func(*locator.Container, *http.Request) error) Option {
	return func(c *Config) {
		c.Middlewares = append(c.Middlewares, mw)
	}
}

func defaultConfig(c *locator.Container) *Config {
	return &Config{
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
		Logger: c.Logger(),
	}
}

// RequestScope creates a Chi middleware that runs each request as one unit
// of work on c.
//
// Before the handler runs, the Request scope holds the *http.Request and the
// *chi.Context under their type names, and the request configuration holds
// "request.id", "request.method" and "request.path". The container is
// attached to the request context (see locator.FromContext). After the
// handler returns, the Request scope is reset.
func RequestScope(c *locator.Container, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig(c)
	for _, opt := range opts {
		opt(cfg)
	}

	var mu sync.Mutex

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Concurrent {
				mu.Lock()
				defer mu.Unlock()
			}
			defer c.ResetRequestScope()

			r = r.WithContext(locator.WithContext(r.Context(), c))
			seed(c, r)

			for _, mw := range cfg.Middlewares {
				if err := mw(c, r); err != nil {
					cfg.Logger.Error("request scope middleware failed",
						zap.String("request_id", c.RequestID()), zap.Error(err))
					cfg.ErrorHandler(w, r, err)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func seed(c *locator.Container, r *http.Request) {
	c.RegisterInstance(locator.TypeNameOf[*http.Request](), r, locator.Request)
	if rctx := gochi.RouteContext(r.Context()); rctx != nil {
		c.RegisterInstance(locator.TypeNameOf[*gochi.Context](), rctx, locator.Request)
	}

	c.RegisterConfigs(map[string]any{
		"request": map[string]any{
			"id":     c.RequestID(),
			"method": r.Method,
			"path":   r.URL.Path,
		},
	}, locator.Request)
}

// HandlerConfig holds configuration for the Handle wrapper.
type HandlerConfig struct {
	// PanicRecovery enables panic recovery in the handler.
	PanicRecovery bool

	// PanicHandler is called when a panic occurs (if PanicRecovery is true).
	PanicHandler func(http.ResponseWriter, *http.Request, any)

	// ContainerErrorHandler is called when no container is attached to the request.
	ContainerErrorHandler func(http.ResponseWriter, *http.Request)

	// ResolutionErrorHandler is called when the controller cannot be resolved.
	ResolutionErrorHandler func(http.ResponseWriter, *http.Request, error)
}

// HandlerOption configures the Handle wrapper.
type HandlerOption func(*HandlerConfig)

// WithPanicRecovery enables or disables panic recovery in the handler.
func WithPanicRecovery(enabled bool) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicRecovery = enabled
	}
}

// WithPanicHandler sets the handler for panics.
func WithPanicHandler(h func(http.ResponseWriter, *http.Request, any)) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicHandler = h
	}
}

// WithContainerErrorHandler sets the handler for requests without a container.
func WithContainerErrorHandler(h func(http.ResponseWriter, *http.Request)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ContainerErrorHandler = h
	}
}

// WithResolutionErrorHandler sets the error handler for controller resolution failures.
func WithResolutionErrorHandler(h func(http.ResponseWriter, *http.Request, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ResolutionErrorHandler = h
	}
}

func defaultHandlerConfig() *HandlerConfig {
	internalError := func(w http.ResponseWriter) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}

	return &HandlerConfig{
		PanicHandler: func(w http.ResponseWriter, r *http.Request, v any) {
			logger(r).Error("panic in handler", zap.Any("panic", v))
			internalError(w)
		},
		ContainerErrorHandler: func(w http.ResponseWriter, r *http.Request) {
			zap.L().Error("no container attached to request", zap.String("path", r.URL.Path))
			internalError(w)
		},
		ResolutionErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger(r).Error("failed to resolve controller", zap.Error(err))
			internalError(w)
		},
	}
}

func logger(r *http.Request) *zap.Logger {
	if c, ok := locator.FromContext(r.Context()); ok {
		return c.Logger()
	}
	return zap.L()
}

// Handle wraps a controller method. The controller T is resolved by its type
// name from the container attached to the request, so it may depend on
// request-scoped values such as *http.Request or *chi.Context.
//
// The method signature should be: func(T, http.ResponseWriter, *http.Request)
//
//	r.Get("/users/{id}", locatorchi.Handle((*UserController).GetByID))
func Handle[T any](method func(T, http.ResponseWriter, *http.Request), opts ...HandlerOption) http.HandlerFunc {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.PanicRecovery {
			defer func() {
				if v := recover(); v != nil {
					cfg.PanicHandler(w, r, v)
				}
			}()
		}

		c, ok := locator.FromContext(r.Context())
		if !ok {
			cfg.ContainerErrorHandler(w, r)
			return
		}

		controller, err := locator.Resolve[T](c)
		if err != nil {
			cfg.ResolutionErrorHandler(w, r, err)
			return
		}

		method(controller, w, r)
	}
}
