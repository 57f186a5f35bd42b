package folio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-barry/folio/core"
)

type RuntimeConfig struct {
	Env         string
	EnableCache bool
	ConfigPath  string
	// Host, Port and Debug override the config file and environment when
	// set. Debug is a pointer so an explicit false can be told apart.
	Host  string
	Port  int
	Debug *bool
}

const (
	DefaultConfigPath = "folio.config.yml"
	shutdownTimeout   = 5 * time.Second
)

var ListenAndServe = func(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutdown signal received, stopping new connections.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var Exit = os.Exit

// ResolveConfig merges the config file, FOLIO_* environment variables and
// the runtime overrides, in that order.
func ResolveConfig(cfg RuntimeConfig) core.Config {
	path := cfg.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	config := core.LoadConfig(path)
	config = core.ApplyEnv(config, os.LookupEnv)
	config.CacheEnabled = config.CacheEnabled || cfg.EnableCache

	if cfg.Host != "" {
		config.Host = cfg.Host
	}
	if cfg.Port > 0 {
		config.Port = cfg.Port
	}
	if cfg.Debug != nil {
		config.Debug = *cfg.Debug
	}
	if config.Debug {
		config.DebugLogs = true
	}
	return config
}

func BuildServer(ctx context.Context, cfg RuntimeConfig) (string, http.Handler, error) {
	config := ResolveConfig(cfg)

	table, err := core.NewRouteTable(core.DefaultRoutes()...)
	if err != nil {
		return "", nil, err
	}

	mux := http.NewServeMux()
	publicDir := config.PublicDir
	cacheStaticDir := filepath.Join(config.OutputDir, "static")

	rtCtx := core.RuntimeContext{Env: cfg.Env}

	if cfg.Env == "dev" {
		setupDevStaticRoutes(mux, publicDir)

		reloader := core.NewLiveReloader()
		mux.HandleFunc(core.ReloadPath, reloader.Handler)

		rtCtx.EnableWatch = true

		if info, err := os.Stat(publicDir); err == nil && info.IsDir() {
			go func() {
				if err := core.WatchDir(ctx, publicDir, reloader.BroadcastReload); err != nil {
					log.Printf("⚠️  live reload disabled: %v", err)
				}
			}()
		}
	} else {
		setupProdStaticRoutes(mux, publicDir, cacheStaticDir)
	}

	router, err := core.NewRouter(config, table, rtCtx)
	if err != nil {
		return "", nil, err
	}
	mux.Handle("/", router)

	var handler http.Handler = mux
	if config.DebugLogs {
		handler = core.LoggingMiddleware(log.Default(), handler)
	}

	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	return addr, handler, nil
}

var Start = func(cfg RuntimeConfig) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Starting Folio in", cfg.Env, "mode...")

	addr, handler, err := BuildServer(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Server failed: %v\n", err)
		Exit(1)
		return
	}

	fmt.Printf("✅ Folio running at http://%s\n", addr)
	if err := ListenAndServe(ctx, addr, handler); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Server failed: %v\n", err)
		Exit(1)
	}
}

func setupDevStaticRoutes(mux *http.ServeMux, publicDir string) {
	fileServer := http.FileServer(http.Dir(publicDir))
	mux.Handle("/static/", http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fileServer.ServeHTTP(w, r)
	})))

	for _, name := range []string{"favicon.ico", "robots.txt"} {
		file := filepath.Join(publicDir, name)
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, file)
		})
	}
}

func setupProdStaticRoutes(mux *http.ServeMux, publicDir, cacheStaticDir string) {
	mux.Handle("/static/", makeStaticHandler(publicDir, cacheStaticDir))

	for _, name := range []string{"favicon.ico", "robots.txt"} {
		file := filepath.Join(publicDir, name)
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			serveFileWithHeaders(w, r, file, "public, max-age=31536000, immutable")
		})
	}
}

// makeStaticHandler serves /static/ from the minified cache first (gzip
// when accepted), then from the public dir.
func makeStaticHandler(publicDir, cacheDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trimmed := strings.TrimPrefix(r.URL.Path, "/static/")
		if trimmed == "" || strings.Contains(trimmed, "..") {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		rel := filepath.FromSlash(trimmed)

		cachedFile := filepath.Join(cacheDir, rel)
		gzipFile := cachedFile + ".gz"
		const immutable = "public, max-age=31536000, immutable"

		if acceptsGzip(r) {
			if _, err := os.Stat(gzipFile); err == nil {
				w.Header().Set("Content-Type", detectMimeType(cachedFile))
				w.Header().Set("Content-Encoding", "gzip")
				w.Header().Set("Vary", "Accept-Encoding")
				w.Header().Set("Cache-Control", immutable)
				http.ServeFile(w, r, gzipFile)
				return
			}
		}

		if _, err := os.Stat(cachedFile); err == nil {
			serveFileWithHeaders(w, r, cachedFile, immutable)
			return
		}

		publicFile := filepath.Join(publicDir, rel)
		if info, err := os.Stat(publicFile); err == nil && !info.IsDir() {
			serveFileWithHeaders(w, r, publicFile, immutable)
			return
		}

		http.NotFound(w, r)
	})
}

func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, path, cacheControl string) {
	w.Header().Set("Content-Type", detectMimeType(path))
	w.Header().Set("Cache-Control", cacheControl)
	http.ServeFile(w, r, path)
}

func detectMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ico":
		return "image/x-icon"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".woff":
		return "font/woff"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}
