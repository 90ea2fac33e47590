package static

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// spaConfig holds single-page application serving configuration.
type spaConfig struct {
	indexFile    string
	excludePaths []string
}

// SPAOption configures SPA serving behavior.
type SPAOption func(*spaConfig)

// WithSPAIndex sets the application shell file (default "index.html").
func WithSPAIndex(name string) SPAOption {
	return func(c *spaConfig) {
		c.indexFile = name
	}
}

// WithExcludePaths sets URL prefixes that bypass the SPA fallback and pass
// to the next layer instead, typically API prefixes mounted on the same
// router.
func WithExcludePaths(prefixes ...string) SPAOption {
	return func(c *spaConfig) {
		c.excludePaths = prefixes
	}
}

// SPA creates a handler serving a single-page application from a directory.
// Paths resolving to real files serve those files; every other GET path
// serves the application shell so client-side routing handles it.
func SPA[C handler.Context](root string, opts ...SPAOption) handler.HandlerFunc[C] {
	info, err := os.Stat(root)
	if err != nil {
		panic("static.SPA: " + err.Error())
	}
	if !info.IsDir() {
		panic("static.SPA: not a directory: " + root)
	}

	cfg := &spaConfig{indexFile: "index.html"}
	for _, opt := range opts {
		opt(cfg)
	}

	fsys := os.DirFS(root)
	fileCfg := &config{indexFile: cfg.indexFile}

	return func(ctx C) handler.Result {
		r := ctx.Request()
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return handler.Next()
		}

		p := path.Clean(r.URL.Path)
		for _, prefix := range cfg.excludePaths {
			if strings.HasPrefix(p, prefix) {
				return handler.Next()
			}
		}

		name, ok := resolve(fsys, fileCfg, r.URL.Path)
		if !ok {
			// Fallback to the shell; a missing shell is a setup error.
			if _, err := fs.Stat(fsys, cfg.indexFile); err != nil {
				return handler.Next()
			}
			name = cfg.indexFile
		}

		if err := serveFile(ctx, fsys, name); err != nil {
			return handler.Fail(err)
		}
		return handler.End()
	}
}
