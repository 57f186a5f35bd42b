package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-barry/folio"
	"github.com/go-barry/folio/core"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
)

type routeInfo struct {
	Name      string   `json:"name"`
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases,omitempty"`
	Title     string   `json:"title"`
}

type projectInfo struct {
	Host         string      `json:"host"`
	Port         int         `json:"port"`
	Debug        bool        `json:"debug"`
	OutputDir    string      `json:"outputDir"`
	PublicDir    string      `json:"publicDir"`
	CacheEnabled bool        `json:"cache"`
	DebugHeaders bool        `json:"debugHeaders"`
	DebugLogs    bool        `json:"debugLogs"`
	Routes       []routeInfo `json:"routes"`
	CachedPages  int         `json:"cachedPages"`
}

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print configuration, route table and cache summary",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: folio.DefaultConfigPath, Usage: "path to the YAML config file"},
		&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
	},
	Action: func(c *cli.Context) error {
		config := core.ApplyEnv(core.LoadConfig(c.String("config")), os.LookupEnv)

		table, err := core.NewRouteTable(core.DefaultRoutes()...)
		if err != nil {
			return err
		}

		info := projectInfo{
			Host:         config.Host,
			Port:         config.Port,
			Debug:        config.Debug,
			OutputDir:    config.OutputDir,
			PublicDir:    config.PublicDir,
			CacheEnabled: config.CacheEnabled,
			DebugHeaders: config.DebugHeaders,
			DebugLogs:    config.DebugLogs,
			CachedPages:  countCachedPages(config.OutputDir),
		}
		for _, route := range table.Routes() {
			info.Routes = append(info.Routes, routeInfo{
				Name:      route.Name,
				Canonical: route.CanonicalPath(),
				Aliases:   route.Paths[1:],
				Title:     route.Page.Title,
			})
		}

		if c.Bool("json") {
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encode info: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("🌐 Address: %s:%d\n", info.Host, info.Port)
		fmt.Println("🐞 Debug:", info.Debug)
		fmt.Println("📁 Output Directory:", info.OutputDir)
		fmt.Println("📁 Public Directory:", info.PublicDir)
		fmt.Println("🔁 Cache Enabled:", info.CacheEnabled)
		fmt.Println("🔁 Debug Headers Enabled:", info.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", info.DebugLogs)
		fmt.Println()

		fmt.Println("🗂️  Routes Found:", len(info.Routes))
		for _, r := range info.Routes {
			line := fmt.Sprintf("   %-10s %s", r.Name, r.Canonical)
			if len(r.Aliases) > 0 {
				line += " (aliases: " + strings.Join(r.Aliases, ", ") + ")"
			}
			fmt.Println(line)
		}
		fmt.Println("💾 Cached Pages:", info.CachedPages)

		return nil
	},
}

func countCachedPages(outputDir string) int {
	count := 0
	filepath.Walk(filepath.Join(outputDir, "pages"), func(path string, fi os.FileInfo, err error) error {
		if err == nil && !fi.IsDir() && filepath.Base(path) == "index.html" {
			count++
		}
		return nil
	})
	return count
}
