package chi

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator"
)

// Test types
type testService struct {
	ID string
}

type testController struct {
	Request *http.Request
	Route   *gochi.Context
	Service *testService
}

func newTestController(r *http.Request, rctx *gochi.Context, svc *testService) *testController {
	return &testController{Request: r, Route: rctx, Service: svc}
}

func (c *testController) GetUser(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(c.Route.URLParam("id") + ":" + c.Service.ID + ":" + c.Request.Method))
}

func (c *testController) Panic(w http.ResponseWriter, r *http.Request) {
	panic("test panic")
}

func newTestContainer(t *testing.T) *locator.Container {
	t.Helper()

	c := locator.New()
	require.NoError(t, c.DefineType(newTestController))
	require.NoError(t, c.RegisterSingletonProducer(locator.TypeNameOf[*testService](), func() any {
		return &testService{ID: "svc"}
	}))
	return c
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRequestScope(t *testing.T) {
	t.Run("attaches container and seeds request scope", func(t *testing.T) {
		c := newTestContainer(t)

		var (
			fromCtx *locator.Container
			req     any
			method  any
			path    any
			id      any
		)

		r := gochi.NewRouter()
		r.Use(RequestScope(c))
		r.Get("/items", func(w http.ResponseWriter, r *http.Request) {
			fromCtx, _ = locator.FromContext(r.Context())
			req, _ = c.Get(locator.TypeNameOf[*http.Request]())
			method = c.GetConfig("request.method", nil)
			path = c.GetConfig("request.path", nil)
			id = c.GetConfig("request.id", nil)
			w.WriteHeader(http.StatusOK)
		})

		rec := serve(r, http.MethodGet, "/items")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Same(t, c, fromCtx)
		assert.IsType(t, &http.Request{}, req)
		assert.Equal(t, http.MethodGet, method)
		assert.Equal(t, "/items", path)
		assert.NotEmpty(t, id)
	})

	t.Run("resets request scope after each request", func(t *testing.T) {
		c := newTestContainer(t)

		var seen []any

		r := gochi.NewRouter()
		r.Use(RequestScope(c, WithMiddleware(func(c *locator.Container, r *http.Request) error {
			return c.RegisterRequestProducer("counter", func() any { return &testService{} })
		})))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			v, err := c.Get("counter")
			assert.NoError(t, err)

			again, _ := c.Get("counter")
			assert.Same(t, v, again)

			seen = append(seen, v)
		})

		serve(r, http.MethodGet, "/")
		serve(r, http.MethodGet, "/")

		require.Len(t, seen, 2)
		assert.NotSame(t, seen[0], seen[1])
		assert.False(t, c.Has("counter"))
		assert.Nil(t, c.GetConfig("request.path", nil))
		assert.True(t, c.Has(locator.TypeNameOf[*testService]()), "global scope survives")
	})

	t.Run("middleware error uses error handler", func(t *testing.T) {
		c := newTestContainer(t)

		var handled error
		called := false

		r := gochi.NewRouter()
		r.Use(RequestScope(c,
			WithMiddleware(func(*locator.Container, *http.Request) error {
				return errors.New("denied")
			}),
			WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				handled = err
				w.WriteHeader(http.StatusForbidden)
			}),
		))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		rec := serve(r, http.MethodGet, "/")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.EqualError(t, handled, "denied")
		assert.False(t, called)
	})

	t.Run("default error handler returns 500", func(t *testing.T) {
		c := newTestContainer(t)

		r := gochi.NewRouter()
		r.Use(RequestScope(c, WithMiddleware(func(*locator.Container, *http.Request) error {
			return errors.New("boom")
		})))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {})

		rec := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandle(t *testing.T) {
	t.Run("resolves controller with request dependencies", func(t *testing.T) {
		c := newTestContainer(t)

		r := gochi.NewRouter()
		r.Use(RequestScope(c))
		r.Get("/users/{id}", Handle((*testController).GetUser))

		rec := serve(r, http.MethodGet, "/users/42")

		assert.Equal(t, http.StatusOK, rec.Code)
		body, _ := io.ReadAll(rec.Body)
		assert.Equal(t, "42:svc:GET", string(body))
	})

	t.Run("returns 500 without container", func(t *testing.T) {
		r := gochi.NewRouter()
		r.Get("/users/{id}", Handle((*testController).GetUser))

		rec := serve(r, http.MethodGet, "/users/1")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("custom container error handler", func(t *testing.T) {
		r := gochi.NewRouter()
		r.Get("/", Handle((*testController).GetUser, WithContainerErrorHandler(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})))

		rec := serve(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("resolution error", func(t *testing.T) {
		c := locator.New()

		var resolveErr error

		r := gochi.NewRouter()
		r.Use(RequestScope(c))
		r.Get("/", Handle((*testController).GetUser, WithResolutionErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			resolveErr = err
			w.WriteHeader(http.StatusBadGateway)
		})))

		rec := serve(r, http.MethodGet, "/")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.True(t, locator.IsNotFound(resolveErr))
	})

	t.Run("recovers panics", func(t *testing.T) {
		c := newTestContainer(t)

		var recovered any

		r := gochi.NewRouter()
		r.Use(RequestScope(c))
		r.Get("/", Handle((*testController).Panic,
			WithPanicRecovery(true),
			WithPanicHandler(func(w http.ResponseWriter, r *http.Request, v any) {
				recovered = v
				w.WriteHeader(http.StatusInternalServerError)
			}),
		))

		rec := serve(r, http.MethodGet, "/")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "test panic", recovered)
	})
}
