package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/router"
)

func TestMount(t *testing.T) {
	t.Parallel()

	t.Run("mounted router matches with stripped prefix", func(t *testing.T) {
		t.Parallel()

		sub := router.New[*router.Context]()
		var params map[string]string
		sub.Get("/ping", func(ctx *router.Context) handler.Result {
			params = ctx.Params()
			require.NoError(t, ctx.Response().Text("pong"))
			return handler.End()
		})

		r := router.New[*router.Context]()
		r.Mount("/api", sub)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
		assert.Empty(t, params)
	})

	t.Run("prefix params stay in scope for nested handlers", func(t *testing.T) {
		t.Parallel()

		sub := router.New[*router.Context]()
		sub.Get("/posts/:postID", func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().JSON(map[string]string{
				"user": ctx.Param("userID"),
				"post": ctx.Param("postID"),
			}))
			return handler.End()
		})

		r := router.New[*router.Context]()
		r.Mount("/users/:userID", sub)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/7/posts/99", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"7","post":"99"}`, w.Body.String())
	})

	t.Run("exhausted sub-router resumes the outer cursor", func(t *testing.T) {
		t.Parallel()

		sub := router.New[*router.Context]()
		sub.Get("/only-this", func(ctx *router.Context) handler.Result {
			return handler.End()
		})

		r := router.New[*router.Context]()
		r.Mount("/api", sub)
		r.Get("/api/other", func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().Text("outer"))
			return handler.End()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/other", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "outer", w.Body.String())
	})

	t.Run("error in sub-router bubbles to enclosing catch", func(t *testing.T) {
		t.Parallel()

		errInner := errors.New("inner failure")

		sub := router.New[*router.Context]()
		sub.Get("/fail", func(ctx *router.Context) handler.Result {
			return handler.Fail(errInner)
		})

		var caught error
		r := router.New[*router.Context]()
		r.Mount("/api", sub)
		r.Catch(func(ctx *router.Context, err error) handler.Result {
			caught = err
			require.NoError(t, ctx.Response().SetStatus(http.StatusBadGateway).End())
			return handler.End()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fail", nil))

		assert.ErrorIs(t, caught, errInner)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("catch inside the sub-router wins over the enclosing one", func(t *testing.T) {
		t.Parallel()

		errInner := errors.New("inner failure")

		sub := router.New[*router.Context]()
		sub.Get("/fail", func(ctx *router.Context) handler.Result {
			return handler.Fail(errInner)
		})
		var caughtBy string
		sub.Catch(func(ctx *router.Context, err error) handler.Result {
			caughtBy = "inner"
			return handler.End()
		})

		r := router.New[*router.Context]()
		r.Mount("/api", sub)
		r.Catch(func(ctx *router.Context, err error) handler.Result {
			caughtBy = "outer"
			return handler.End()
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/fail", nil))

		assert.Equal(t, "inner", caughtBy)
	})

	t.Run("nested mounts compose", func(t *testing.T) {
		t.Parallel()

		inner := router.New[*router.Context]()
		inner.Get("/leaf", func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().Text("deep"))
			return handler.End()
		})

		middle := router.New[*router.Context]()
		middle.Mount("/v1", inner)

		r := router.New[*router.Context]()
		r.Mount("/api", middle)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaf", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "deep", w.Body.String())
	})

	t.Run("self mount panics", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		assert.PanicsWithError(t, router.ErrCyclicMount.Error()+": mount on '/loop'", func() {
			r.Mount("/loop", r)
		})
	})

	t.Run("transitive cycle panics at mount time", func(t *testing.T) {
		t.Parallel()

		a := router.New[*router.Context]()
		b := router.New[*router.Context]()
		a.Mount("/b", b)

		assert.Panics(t, func() {
			b.Mount("/a", a)
		})
	})

	t.Run("nil router panics", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		assert.Panics(t, func() {
			r.Mount("/nil", nil)
		})
	})
}
