package cli

import (
	"strings"
	"testing"

	"github.com/go-barry/folio/core"
	"github.com/urfave/cli/v2"
)

func TestCheckCommand_DefaultRoutes(t *testing.T) {
	app := &cli.App{Commands: []*cli.Command{CheckCommand}}

	var runErr error
	output := captureOutput(func() {
		runErr = app.Run([]string{"folio", "check"})
	})

	if runErr != nil {
		t.Fatalf("expected no error, got: %v", runErr)
	}
	for _, want := range []string{"✅ /\n", "✅ /home\n", "✅ /about\n", "✅ /portfolio\n", "✅ /contact\n", "All routes validated successfully."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCheckCommand_MissingNavigationRoute(t *testing.T) {
	original := checkRoutes
	checkRoutes = func() []core.Route { return core.DefaultRoutes()[:3] }
	t.Cleanup(func() { checkRoutes = original })

	app := &cli.App{
		Commands:       []*cli.Command{CheckCommand},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	var appErr error
	captureOutput(func() {
		appErr = app.Run([]string{"folio", "check"})
	})

	exitErr, ok := appErr.(cli.ExitCoder)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected cli.Exit code 1, got: %v", appErr)
	}
	if !strings.Contains(appErr.Error(), "contact") {
		t.Errorf("expected missing route in error, got: %v", appErr)
	}
}

func TestCheckCommand_DuplicateRoutes(t *testing.T) {
	original := checkRoutes
	checkRoutes = func() []core.Route {
		routes := core.DefaultRoutes()
		routes[3].Paths = []string{"/about"}
		return routes
	}
	t.Cleanup(func() { checkRoutes = original })

	app := &cli.App{
		Commands:       []*cli.Command{CheckCommand},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	appErr := app.Run([]string{"folio", "check"})

	exitErr, ok := appErr.(cli.ExitCoder)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected cli.Exit code 1, got: %v", appErr)
	}
	if !strings.Contains(appErr.Error(), "invalid route table") {
		t.Errorf("unexpected error: %v", appErr)
	}
}

func TestCheckPath_ReportsProblems(t *testing.T) {
	table := core.MustDefaultTable()
	router, err := core.NewRouter(core.DefaultConfig(), table, core.RuntimeContext{})
	if err != nil {
		t.Fatal(err)
	}

	if got := checkPath(router, "/nonexistent", nil); got != "status 404" {
		t.Errorf("expected status 404, got %q", got)
	}
	if got := checkPath(router, "/about", []string{"/", "/about"}); !strings.Contains(got, "expected 2 links") {
		t.Errorf("expected link count problem, got %q", got)
	}
	if got := checkPath(router, "/about", []string{"/", "/about", "/portfolio", "/blog"}); got != "missing link to /blog" {
		t.Errorf("expected missing link problem, got %q", got)
	}
}
