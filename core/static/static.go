package static

import (
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// config holds file serving configuration shared by Dir, FS and SPA.
type config struct {
	stripPrefix string
	indexFile   string
}

// Option configures file serving behavior.
type Option func(*config)

// WithStripPrefix removes the given prefix from the URL path before
// resolving files, for file servers registered under a route prefix.
func WithStripPrefix(prefix string) Option {
	return func(c *config) {
		c.stripPrefix = prefix
	}
}

// WithIndexFile sets the file served for directory paths (default "index.html").
func WithIndexFile(name string) Option {
	return func(c *config) {
		c.indexFile = name
	}
}

// Dir creates a handler serving files from a directory on disk.
// Panics at startup if the path does not exist or is not a directory.
func Dir[C handler.Context](root string, opts ...Option) handler.HandlerFunc[C] {
	info, err := os.Stat(root)
	if err != nil {
		panic("static.Dir: " + err.Error())
	}
	if !info.IsDir() {
		panic("static.Dir: not a directory: " + root)
	}
	return FS[C](os.DirFS(root), opts...)
}

// FS creates a handler serving files from an fs.FS. Requests that do not
// resolve to a file (or use a method other than GET or HEAD) pass to the
// next layer. Directory listing is disabled; directory paths serve the
// configured index file when present.
func FS[C handler.Context](fsys fs.FS, opts ...Option) handler.HandlerFunc[C] {
	cfg := &config{indexFile: "index.html"}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx C) handler.Result {
		r := ctx.Request()
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return handler.Next()
		}

		name, ok := resolve(fsys, cfg, r.URL.Path)
		if !ok {
			return handler.Next()
		}

		if err := serveFile(ctx, fsys, name); err != nil {
			return handler.Fail(err)
		}
		return handler.End()
	}
}

// resolve maps a URL path to an existing regular file in fsys, applying
// prefix stripping and the directory index rule. Traversal outside the
// filesystem root is rejected by fs.ValidPath.
func resolve(fsys fs.FS, cfg *config, urlPath string) (string, bool) {
	p := path.Clean(urlPath)
	if cfg.stripPrefix != "" {
		var found bool
		if p, found = strings.CutPrefix(p, cfg.stripPrefix); !found {
			return "", false
		}
	}

	name := strings.TrimPrefix(p, "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		name = path.Join(name, cfg.indexFile)
		if info, err = fs.Stat(fsys, name); err != nil || info.IsDir() {
			return "", false
		}
	}

	return name, true
}

// serveFile writes one file terminally through the response writer, so the
// dispatch engine sees a normal buffered send.
func serveFile(ctx handler.Context, fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := ctx.Response()
	h := w.Header()
	if h.Get("Content-Type") == "" {
		ct := mime.TypeByExtension(path.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
	}
	h.Set("Content-Length", fmt.Sprint(info.Size()))

	if ctx.Request().Method == http.MethodHead {
		return w.End()
	}

	if err := w.Stream(f); err != nil {
		return err
	}
	return w.End()
}
