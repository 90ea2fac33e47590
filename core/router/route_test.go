package router_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/router"
)

func TestRouteView(t *testing.T) {
	t.Parallel()

	t.Run("per-method registration without repeating the path", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Route("/items/:id").
			Get(func(ctx *router.Context) handler.Result {
				require.NoError(t, ctx.Response().Text("get "+ctx.Param("id")))
				return handler.End()
			}).
			Delete(func(ctx *router.Context) handler.Result {
				require.NoError(t, ctx.Response().NoContent())
				return handler.End()
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/5", nil))
		assert.Equal(t, "get 5", w.Body.String())

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/items/5", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/items/5", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("pattern alternation binds first winner", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Route("/legacy/:slug", "/modern/:slug").Get(func(ctx *router.Context) handler.Result {
			require.NoError(t, ctx.Response().Text(ctx.Param("slug")))
			return handler.End()
		})

		for _, path := range []string{"/legacy/a", "/modern/b"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("regexp route with named groups", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.RouteRegexp(regexp.MustCompile(`^/reports/(?P<year>\d{4})/(?P<month>\d{2})$`)).
			Get(func(ctx *router.Context) handler.Result {
				require.NoError(t, ctx.Response().JSON(map[string]string{
					"year":  ctx.Param("year"),
					"month": ctx.Param("month"),
				}))
				return handler.End()
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/2026/08", nil))
		assert.JSONEq(t, `{"year":"2026","month":"08"}`, w.Body.String())

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/08/2026", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("method helper on the view", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Route("/thing").Method("patch", func(ctx *router.Context) handler.Result {
			return handler.End()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/thing", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
