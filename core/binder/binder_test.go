package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/relay/core/binder"
	"github.com/dmitrymomot/relay/core/response"
	"github.com/dmitrymomot/relay/core/router"
)

func newTestContext(t *testing.T, r *http.Request) *router.Context {
	t.Helper()
	return router.NewContext(response.NewWriter(httptest.NewRecorder(), r), r)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type createUser struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	t.Run("decodes valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users",
			strings.NewReader(`{"name":"ada","email":"ada@example.com"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var v createUser
		require.NoError(t, binder.JSON()(newTestContext(t, req), &v))
		assert.Equal(t, "ada", v.Name)
		assert.Equal(t, "ada@example.com", v.Email)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users",
			strings.NewReader(`{"name":"ada","role":"admin"}`))
		req.Header.Set("Content-Type", "application/json")

		var v createUser
		assert.ErrorIs(t, binder.JSON()(newTestContext(t, req), &v), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users",
			strings.NewReader(`{"name":"ada"}{"name":"bob"}`))
		req.Header.Set("Content-Type", "application/json")

		var v createUser
		assert.ErrorIs(t, binder.JSON()(newTestContext(t, req), &v), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects wrong media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")

		var v createUser
		err := binder.JSON()(newTestContext(t, req), &v)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects missing content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))

		var v createUser
		assert.ErrorIs(t, binder.JSON()(newTestContext(t, req), &v), binder.ErrMissingContentType)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.Header.Set("Content-Type", "application/json")

		var v createUser
		assert.ErrorIs(t, binder.JSON()(newTestContext(t, req), &v), binder.ErrFailedToParseJSON)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type search struct {
		Term   string   `query:"q"`
		Page   int      `query:"page"`
		Tags   []string `query:"tags"`
		Active *bool    `query:"active"`
		Hidden string   `query:"-"`
	}

	t.Run("binds typed fields", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/search?q=go&page=3&tags=web,api&tags=http&active=true", nil)

		var v search
		require.NoError(t, binder.Query()(newTestContext(t, req), &v))
		assert.Equal(t, "go", v.Term)
		assert.Equal(t, 3, v.Page)
		assert.Equal(t, []string{"web", "api", "http"}, v.Tags)
		require.NotNil(t, v.Active)
		assert.True(t, *v.Active)
		assert.Empty(t, v.Hidden)
	})

	t.Run("missing parameters keep zero values", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/search", nil)

		var v search
		require.NoError(t, binder.Query()(newTestContext(t, req), &v))
		assert.Zero(t, v.Page)
		assert.Nil(t, v.Active)
	})

	t.Run("conversion failure names the field", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/search?page=abc", nil)

		var v search
		err := binder.Query()(newTestContext(t, req), &v)
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
		assert.Contains(t, err.Error(), "Page")
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type profile struct {
		UserID int    `path:"id"`
		Slug   string `path:"slug"`
	}

	t.Run("binds captured parameters", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users/42/posts/intro", nil)
		ctx := newTestContext(t, req)
		ctx.SetParam("id", "42")
		ctx.SetParam("slug", "intro")

		var v profile
		require.NoError(t, binder.Path()(ctx, &v))
		assert.Equal(t, 42, v.UserID)
		assert.Equal(t, "intro", v.Slug)
	})

	t.Run("conversion failure", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users/nope", nil)
		ctx := newTestContext(t, req)
		ctx.SetParam("id", "nope")

		var v profile
		assert.ErrorIs(t, binder.Path()(ctx, &v), binder.ErrFailedToParsePath)
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded values", func(t *testing.T) {
		t.Parallel()

		type login struct {
			Email    string `form:"email"`
			Remember bool   `form:"remember"`
		}

		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader("email=ada%40example.com&remember=on"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var v login
		require.NoError(t, binder.Form()(newTestContext(t, req), &v))
		assert.Equal(t, "ada@example.com", v.Email)
		assert.True(t, v.Remember)
	})

	t.Run("multipart values and file", func(t *testing.T) {
		t.Parallel()

		type upload struct {
			Title  string                `form:"title"`
			Avatar *multipart.FileHeader `file:"avatar"`
		}

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "portrait"))
		fw, err := mw.CreateFormFile("avatar", "../../etc/passwd")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var v upload
		require.NoError(t, binder.Form()(newTestContext(t, req), &v))
		assert.Equal(t, "portrait", v.Title)
		require.NotNil(t, v.Avatar)
		assert.Equal(t, "passwd", v.Avatar.Filename)
	})

	t.Run("rejects wrong media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		var v struct{}
		assert.ErrorIs(t, binder.Form()(newTestContext(t, req), &v), binder.ErrUnsupportedMediaType)
	})
}

func TestBind(t *testing.T) {
	t.Parallel()

	type profileReq struct {
		UserID int  `path:"id"`
		Expand bool `query:"expand"`
	}

	req := httptest.NewRequest(http.MethodGet, "/users/7?expand=true", nil)
	ctx := newTestContext(t, req)
	ctx.SetParam("id", "7")

	var v profileReq
	require.NoError(t, binder.Bind(ctx, &v, binder.Path(), binder.Query()))
	assert.Equal(t, 7, v.UserID)
	assert.True(t, v.Expand)
}
