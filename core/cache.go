package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

func pageCacheDir(config Config, routeKey string) string {
	return filepath.Join(config.OutputDir, "pages", routeKey)
}

// GetCachedHTML returns the cached page for routeKey. A page that was never
// cached yields an error wrapping ErrNotFound.
func GetCachedHTML(config Config, routeKey string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(pageCacheDir(config, routeKey), "index.html"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cached page %q: %w", routeKey, ErrNotFound)
		}
		return nil, err
	}
	return content, nil
}

// CachedGzipPath returns the path of the gzip copy of a cached page, if any.
func CachedGzipPath(config Config, routeKey string) (string, bool) {
	gzPath := filepath.Join(pageCacheDir(config, routeKey), "index.html.gz")
	if _, err := os.Stat(gzPath); err != nil {
		return "", false
	}
	return gzPath, true
}

func SaveCachedHTML(config Config, routeKey string, html []byte) error {
	outDir := pageCacheDir(config, routeKey)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return err
	}

	htmlPath := filepath.Join(outDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0644); err != nil {
		return err
	}

	return writeGzip(htmlPath+".gz", html)
}
