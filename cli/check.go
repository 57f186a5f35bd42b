package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-barry/folio/core"
	"github.com/urfave/cli/v2"
)

// checkRoutes is swapped in tests to exercise the failure paths.
var checkRoutes = core.DefaultRoutes

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Render every route and validate its navigation links",
	Action: func(c *cli.Context) error {
		table, err := core.NewRouteTable(checkRoutes()...)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid route table: %v", err), 1)
		}

		// A zero RuntimeContext renders plain pages: no minify, cache or reload.
		router, err := core.NewRouter(core.DefaultConfig(), table, core.RuntimeContext{})
		if err != nil {
			return cli.Exit(fmt.Sprintf("router setup failed: %v", err), 1)
		}

		want := make([]string, 0, len(core.NavOrder))
		for _, name := range core.NavOrder {
			href, err := table.URLFor(name)
			if err != nil {
				return cli.Exit(fmt.Sprintf("navigation: %v", err), 1)
			}
			want = append(want, href)
		}

		var failed bool
		for _, route := range table.Routes() {
			for _, p := range route.Paths {
				if problem := checkPath(router, p, want); problem != "" {
					failed = true
					fmt.Printf("❌ %s → %s\n", p, problem)
					continue
				}
				fmt.Printf("✅ %s\n", p)
			}
		}

		if failed {
			return cli.Exit("some routes failed validation", 1)
		}

		fmt.Println("✅ All routes validated successfully.")
		return nil
	},
}

func checkPath(h http.Handler, path string, wantHrefs []string) string {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		return fmt.Sprintf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		return fmt.Sprintf("content type %q", ct)
	}

	body := rec.Body.String()
	if n := strings.Count(body, "<a "); n != len(wantHrefs) {
		return fmt.Sprintf("expected %d links, found %d", len(wantHrefs), n)
	}
	for _, href := range wantHrefs {
		if !strings.Contains(body, fmt.Sprintf(`href="%s"`, href)) {
			return fmt.Sprintf("missing link to %s", href)
		}
	}
	return ""
}
