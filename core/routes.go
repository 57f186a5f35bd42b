package core

import (
	"fmt"
	"path"
	"strings"
)

type Page struct {
	Title      string
	Heading    string
	Paragraphs []string
}

// Route binds a stable name to one or more URL paths. Paths[0] is the
// canonical path handed out by URLFor; the rest are aliases.
type Route struct {
	Name  string
	Label string
	Paths []string
	Page  Page
}

func (r Route) CanonicalPath() string {
	if len(r.Paths) == 0 {
		return ""
	}
	return r.Paths[0]
}

type RouteTable struct {
	routes []Route
	byName map[string]int
	byPath map[string]int
}

func NewRouteTable(routes ...Route) (*RouteTable, error) {
	t := &RouteTable{
		byName: make(map[string]int, len(routes)),
		byPath: make(map[string]int, len(routes)),
	}

	for _, route := range routes {
		if route.Name == "" {
			return nil, fmt.Errorf("route with paths %v has no name", route.Paths)
		}
		if len(route.Paths) == 0 {
			return nil, fmt.Errorf("route %q has no paths", route.Name)
		}
		if _, ok := t.byName[route.Name]; ok {
			return nil, fmt.Errorf("route name %q: %w", route.Name, ErrDuplicateRoute)
		}

		idx := len(t.routes)
		paths := make([]string, 0, len(route.Paths))
		for _, p := range route.Paths {
			p = cleanPath(p)
			if owner, ok := t.byPath[p]; ok {
				return nil, fmt.Errorf("path %q claimed by %q and %q: %w", p, t.routes[owner].Name, route.Name, ErrDuplicateRoute)
			}
			t.byPath[p] = idx
			paths = append(paths, p)
		}

		route.Paths = paths
		if route.Label == "" {
			route.Label = route.Page.Title
		}
		t.byName[route.Name] = idx
		t.routes = append(t.routes, route)
	}

	return t, nil
}

func (t *RouteTable) URLFor(name string) (string, error) {
	idx, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("url for %q: %w", name, ErrUnknownRoute)
	}
	return t.routes[idx].CanonicalPath(), nil
}

// Match looks up the exact request path. Registered paths are cleaned but
// request paths are not, so /about/ does not match /about.
func (t *RouteTable) Match(urlPath string) (Route, bool) {
	if urlPath == "" {
		urlPath = "/"
	}
	idx, ok := t.byPath[urlPath]
	if !ok {
		return Route{}, false
	}
	return t.routes[idx], true
}

func (t *RouteTable) Lookup(name string) (Route, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[idx], true
}

// Routes returns the routes in registration order.
func (t *RouteTable) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func DefaultRoutes() []Route {
	return []Route{
		{
			Name:  "home",
			Label: "Home",
			Paths: []string{"/", "/home"},
			Page: Page{
				Title:      "Home",
				Heading:    "Home Page",
				Paragraphs: []string{"Welcome to my first Folio website!"},
			},
		},
		{
			Name:  "about",
			Label: "About",
			Paths: []string{"/about"},
			Page: Page{
				Title:   "About",
				Heading: "About Page",
				Paragraphs: []string{
					"This is a very simple Folio website to learn about using html routes and anchor tags for navigating between pages.",
					"It's not pretty and it's really not practical (lots of duplicated code).",
					"To be continued...",
				},
			},
		},
		{
			Name:  "portfolio",
			Label: "Portfolio",
			Paths: []string{"/portfolio"},
			Page: Page{
				Title:      "Portfolio",
				Heading:    "Portfolio Page",
				Paragraphs: []string{"Projects..."},
			},
		},
		{
			Name:  "contact",
			Label: "Contact",
			Paths: []string{"/contact"},
			Page: Page{
				Title:      "Contact",
				Heading:    "Contact Page",
				Paragraphs: []string{"Contact me..."},
			},
		},
	}
}

// MustDefaultTable panics if the built-in routes are inconsistent.
func MustDefaultTable() *RouteTable {
	t, err := NewRouteTable(DefaultRoutes()...)
	if err != nil {
		panic(err)
	}
	return t
}
