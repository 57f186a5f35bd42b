package core

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
)

type RuntimeContext struct {
	Env         string
	EnableWatch bool
}

type Router struct {
	config   Config
	env      string
	table    *RouteTable
	renderer *Renderer
	rendered sync.Map
}

func NewRouter(config Config, table *RouteTable, ctx RuntimeContext) (*Router, error) {
	if table == nil {
		return nil, fmt.Errorf("new router: nil route table")
	}

	// The minified copy is written once here; renders reuse its href.
	stylesheet := MinifyAsset(ctx.Env, DefaultStylesheet, config.PublicDir, config.OutputDir)

	renderer, err := NewRenderer(table, RenderOptions{
		Footer:     config.Footer,
		Stylesheet: stylesheet,
		LiveReload: ctx.Env == "dev" && ctx.EnableWatch,
	})
	if err != nil {
		return nil, err
	}

	return &Router{
		config:   config,
		env:      ctx.Env,
		table:    table,
		renderer: renderer,
	}, nil
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	route, ok := r.table.Match(req.URL.Path)
	if !ok {
		http.NotFound(w, req)
		return
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	html, err := r.page(route)
	if err != nil {
		if r.config.DebugLogs {
			log.Printf("❌ render %s: %v", route.Name, err)
		}
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	etag := generateETag(html)
	var gzPath string
	if r.cacheEnabled() {
		w.Header().Set("Vary", "Accept-Encoding")
		if acceptsGzip(req) {
			if p, ok := CachedGzipPath(r.config, route.Name); ok {
				gzPath = p
				etag = gzipETag(etag)
			}
		}
	}

	if r.config.DebugHeaders {
		w.Header().Set("X-Folio-Route", route.Name)
	}
	w.Header().Set("ETag", etag)

	if match := req.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if gzPath != "" {
		w.Header().Set("Content-Encoding", "gzip")
		http.ServeFile(w, req, gzPath)
		return
	}

	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}
	w.Write(html)
}

func (r *Router) cacheEnabled() bool {
	return r.env == "prod" && r.config.CacheEnabled
}

// page returns the rendered document for route. With caching on, the
// first render is minified, persisted to the output dir and reused.
func (r *Router) page(route Route) ([]byte, error) {
	if !r.cacheEnabled() {
		return r.renderer.Render(route.Name)
	}

	if cached, ok := r.rendered.Load(route.Name); ok {
		return cached.([]byte), nil
	}

	html, err := GetCachedHTML(r.config, route.Name)
	if err == nil {
		r.rendered.Store(route.Name, html)
		return html, nil
	}
	if !IsNotFoundError(err) && r.config.DebugLogs {
		log.Printf("⚠️  cache %s: %v", route.Name, err)
	}

	html, err = r.renderer.Render(route.Name)
	if err != nil {
		return nil, err
	}

	if minified, err := MinifyHTML(html); err == nil {
		html = minified
	}

	if err := SaveCachedHTML(r.config, route.Name, html); err != nil && r.config.DebugLogs {
		log.Printf("⚠️  cache %s: %v", route.Name, err)
	}

	r.rendered.Store(route.Name, html)
	return html, nil
}

func generateETag(data []byte) string {
	h := md5.Sum(data)
	return `"` + hex.EncodeToString(h[:]) + `"`
}

// gzipETag tags the gzip copy of a page apart from the identity body.
func gzipETag(etag string) string {
	return strings.TrimSuffix(etag, `"`) + `-gz"`
}

func acceptsGzip(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept-Encoding"), "gzip")
}
