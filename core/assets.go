package core

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

// MinifyAsset turns a stylesheet or script href such as ./static/styles.css
// into a minified, content-versioned copy under cacheDir/static. Outside
// prod, or on any failure, the original href is returned.
func MinifyAsset(env, href, publicDir, cacheDir string) string {
	if env != "prod" {
		return href
	}

	rel, ok := staticRel(href)
	if !ok {
		return href
	}

	ext := filepath.Ext(rel)
	name := strings.TrimSuffix(filepath.Base(rel), ext)

	if ext != ".css" && ext != ".js" {
		return href
	}
	if strings.HasSuffix(name, ".min") {
		return href
	}

	original, err := os.ReadFile(filepath.Join(publicDir, filepath.FromSlash(rel)))
	if err != nil {
		return href
	}

	mediaType := "text/css"
	if ext == ".js" {
		mediaType = "application/javascript"
	}

	var buf bytes.Buffer
	if err := newMinifier().Minify(mediaType, &buf, bytes.NewReader(original)); err != nil {
		return href
	}
	minified := buf.Bytes()

	minRel := filepath.ToSlash(filepath.Join(filepath.Dir(rel), fmt.Sprintf("%s.min%s", name, ext)))
	minPath := filepath.Join(cacheDir, "static", filepath.FromSlash(minRel))

	if err := os.MkdirAll(filepath.Dir(minPath), os.ModePerm); err != nil {
		return href
	}
	if err := os.WriteFile(minPath, minified, 0644); err != nil {
		return href
	}
	if err := writeGzip(minPath+".gz", minified); err != nil {
		return href
	}

	return fmt.Sprintf("/static/%s?v=%s", minRel, contentHash(minified))
}

// MinifyHTML shrinks a rendered page. Quotes, end tags and document tags
// are kept so the markup stays readable by simple tools.
func MinifyHTML(page []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := newMinifier().Minify("text/html", &buf, bytes.NewReader(page)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func staticRel(href string) (string, bool) {
	if i := strings.IndexAny(href, "?#"); i != -1 {
		href = href[:i]
	}
	for _, prefix := range []string{"./static/", "/static/"} {
		if strings.HasPrefix(href, prefix) {
			rel := strings.TrimPrefix(href, prefix)
			if rel == "" || strings.Contains(rel, "..") {
				return "", false
			}
			return rel, true
		}
	}
	return "", false
}

func contentHash(data []byte) string {
	h := md5.New()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))[:6]
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}
