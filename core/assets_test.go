package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMinifyAsset_NonProdReturnsSameHref(t *testing.T) {
	href := "./static/styles.css"
	result := MinifyAsset("dev", href, t.TempDir(), t.TempDir())
	if result != href {
		t.Errorf("expected same href in dev mode, got %s", result)
	}
}

func TestMinifyAsset_ProdMinifiesAndCaches(t *testing.T) {
	publicDir := t.TempDir()
	cacheDir := t.TempDir()
	writeTempFile(t, publicDir, "styles.css", "body {\n    color: red;\n}\n")

	result := MinifyAsset("prod", "./static/styles.css", publicDir, cacheDir)

	if !strings.HasPrefix(result, "/static/styles.min.css?v=") {
		t.Fatalf("unexpected minified href: %s", result)
	}

	minified := filepath.Join(cacheDir, "static", "styles.min.css")
	data, err := os.ReadFile(minified)
	if err != nil {
		t.Fatalf("expected minified file to exist: %v", err)
	}
	if string(data) != "body{color:red}" {
		t.Errorf("unexpected minified css: %q", data)
	}
	if _, err := os.Stat(minified + ".gz"); err != nil {
		t.Errorf("expected gzipped file to exist: %v", err)
	}
}

func TestMinifyAsset_VersionFollowsContent(t *testing.T) {
	publicDir := t.TempDir()
	cacheDir := t.TempDir()

	writeTempFile(t, publicDir, "styles.css", "body { color: red; }")
	first := MinifyAsset("prod", "/static/styles.css", publicDir, cacheDir)
	again := MinifyAsset("prod", "/static/styles.css", publicDir, cacheDir)

	writeTempFile(t, publicDir, "styles.css", "body { color: blue; }")
	changed := MinifyAsset("prod", "/static/styles.css", publicDir, cacheDir)

	if first != again {
		t.Errorf("expected stable version, got %s and %s", first, again)
	}
	if first == changed {
		t.Errorf("expected version to change with content, both %s", first)
	}
}

func TestMinifyAsset_UnsupportedExtensionReturnsOriginal(t *testing.T) {
	result := MinifyAsset("prod", "/static/image.png", t.TempDir(), t.TempDir())
	if result != "/static/image.png" {
		t.Errorf("expected original href for unsupported extension, got %s", result)
	}
}

func TestMinifyAsset_AlreadyMinifiedReturnsOriginal(t *testing.T) {
	result := MinifyAsset("prod", "/static/app.min.js", t.TempDir(), t.TempDir())
	if result != "/static/app.min.js" {
		t.Errorf("expected original href for .min.js, got %s", result)
	}
}

func TestMinifyAsset_NonStaticHrefReturnsOriginal(t *testing.T) {
	for _, href := range []string{"/assets/app.css", "./static/../secret.css", "./static/"} {
		if result := MinifyAsset("prod", href, t.TempDir(), t.TempDir()); result != href {
			t.Errorf("expected %s untouched, got %s", href, result)
		}
	}
}

func TestMinifyAsset_MissingSourceFileReturnsOriginal(t *testing.T) {
	result := MinifyAsset("prod", "/static/missing.css", t.TempDir(), t.TempDir())
	if result != "/static/missing.css" {
		t.Errorf("expected fallback on missing source file, got %s", result)
	}
}

func TestMinifyAsset_MinifyErrorReturnsOriginal(t *testing.T) {
	publicDir := t.TempDir()
	writeTempFile(t, publicDir, "broken.js", "function(){")

	result := MinifyAsset("prod", "/static/broken.js", publicDir, t.TempDir())

	if result != "/static/broken.js" {
		t.Errorf("expected fallback for minify error, got %s", result)
	}
}

func TestMinifyAsset_MkdirAllFails_ReturnsOriginal(t *testing.T) {
	publicDir := t.TempDir()
	writeTempFile(t, publicDir, "test.css", "body { color: red; }")

	invalidDir := writeTempFile(t, t.TempDir(), "invalid-cache", "not a dir")

	result := MinifyAsset("prod", "/static/test.css", publicDir, invalidDir)

	if result != "/static/test.css" {
		t.Errorf("expected fallback to original href, got %s", result)
	}
}

func TestMinifyHTML_KeepsLinksIntact(t *testing.T) {
	page := []byte(`<!doctype html>
<html>
    <head><title>About</title></head>
    <body>
        <nav>
            <a href="/">Home</a>
            <a href="/about">About</a>
        </nav>
    </body>
</html>`)

	out, err := MinifyHTML(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) >= len(page) {
		t.Errorf("expected output to shrink, %d >= %d", len(out), len(page))
	}
	for _, want := range []string{`href="/"`, `href="/about"`, "<title>About</title>"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("expected %q in minified output: %s", want, out)
		}
	}
}
