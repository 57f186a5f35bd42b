package core

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	DefaultStylesheet = "./static/styles.css"
	ReloadPath        = "/__folio_reload"
)

// NavOrder is the order of links in the navigation bar.
var NavOrder = []string{"home", "about", "portfolio", "contact"}

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

type PageData struct {
	Page       Page
	Nav        []NavLink
	Stylesheet string
	Footer     string
	LiveReload bool
	ReloadPath string
}

type Renderer struct {
	table      *RouteTable
	tmpl       *template.Template
	footer     string
	stylesheet string
	liveReload bool
}

type RenderOptions struct {
	Footer string
	// Stylesheet is the href of the page stylesheet. Empty means
	// DefaultStylesheet.
	Stylesheet string
	LiveReload bool
}

func NewRenderer(table *RouteTable, opts RenderOptions) (*Renderer, error) {
	tmpl, err := template.New("layout.html").Funcs(sprig.HtmlFuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	stylesheet := opts.Stylesheet
	if stylesheet == "" {
		stylesheet = DefaultStylesheet
	}

	return &Renderer{
		table:      table,
		tmpl:       tmpl,
		footer:     opts.Footer,
		stylesheet: stylesheet,
		liveReload: opts.LiveReload,
	}, nil
}

// Nav resolves every navigation entry through the route table so links
// follow path changes without touching link text.
func (r *Renderer) Nav(current string) ([]NavLink, error) {
	links := make([]NavLink, 0, len(NavOrder))
	for _, name := range NavOrder {
		href, err := r.table.URLFor(name)
		if err != nil {
			return nil, err
		}
		route, _ := r.table.Lookup(name)
		links = append(links, NavLink{
			Label:  route.Label,
			Href:   href,
			Active: name == current,
		})
	}
	return links, nil
}

func (r *Renderer) Render(routeName string) ([]byte, error) {
	route, ok := r.table.Lookup(routeName)
	if !ok {
		return nil, fmt.Errorf("render %q: %w", routeName, ErrUnknownRoute)
	}

	nav, err := r.Nav(route.Name)
	if err != nil {
		return nil, err
	}

	data := PageData{
		Page:       route.Page,
		Nav:        nav,
		Stylesheet: r.stylesheet,
		Footer:     r.footer,
		LiveReload: r.liveReload,
		ReloadPath: ReloadPath,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %q: %w", routeName, err)
	}
	return buf.Bytes(), nil
}
