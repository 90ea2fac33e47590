package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/handler"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
)

func TestContextImplementsHandlerContext(t *testing.T) {
	t.Parallel()

	ctx := &router.Context{}
	var _ handler.Context = ctx
	var _ context.Context = ctx

	assert.NotNil(t, ctx)
}

func TestContextFields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/search/here?q=relay&page=2", nil)
	r.Header.Set("X-Test-Header", "test-value")
	w := response.NewWriter(httptest.NewRecorder(), r)

	ctx := router.NewContext(w, r)

	assert.Equal(t, http.MethodGet, ctx.Method())
	assert.Equal(t, "/search/here", ctx.Path())
	assert.Equal(t, "test-value", ctx.Header().Get("X-Test-Header"))
	assert.Equal(t, "relay", ctx.Query("q"))
	assert.Equal(t, "2", ctx.Query("page"))
	assert.Empty(t, ctx.Query("missing"))
	assert.Equal(t, "1.1", ctx.ProtoVersion())
	assert.Same(t, w, ctx.Response())
	assert.Same(t, r, ctx.Request())
}

func TestContextProtoVersion(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Proto = "HTTP/2.0"
	r.ProtoMajor = 2
	r.ProtoMinor = 0

	ctx := router.NewContext(response.NewWriter(httptest.NewRecorder(), r), r)
	assert.Equal(t, "2.0", ctx.ProtoVersion())
}

func TestContextParams(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := router.NewContext(response.NewWriter(httptest.NewRecorder(), r), r)

	assert.Empty(t, ctx.Param("id"))

	ctx.SetParam("id", "42")
	assert.Equal(t, "42", ctx.Param("id"))
	assert.Equal(t, map[string]string{"id": "42"}, ctx.Params())
}

func TestContextSetValue(t *testing.T) {
	t.Parallel()

	type key struct{}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := router.NewContext(response.NewWriter(httptest.NewRecorder(), r), r)

	ctx.SetValue(key{}, "stored")
	assert.Equal(t, "stored", ctx.Value(key{}))
	assert.Equal(t, "stored", ctx.Request().Context().Value(key{}))
}

func TestContextDelegatesCancellation(t *testing.T) {
	t.Parallel()

	base, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(base)
	ctx := router.NewContext(response.NewWriter(httptest.NewRecorder(), r), r)

	require.NoError(t, ctx.Err())
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	select {
	case <-ctx.Done():
	default:
		t.Fatal("Done channel should be closed after cancellation")
	}
}
