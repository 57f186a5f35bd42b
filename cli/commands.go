package cli

import (
	"github.com/go-barry/folio"

	"github.com/urfave/cli/v2"
)

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: folio.DefaultConfigPath, Usage: "path to the YAML config file"},
		&cli.StringFlag{Name: "host", Usage: "interface to listen on (overrides config and FOLIO_HOST)"},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "port to listen on (overrides config and FOLIO_PORT)"},
		&cli.BoolFlag{Name: "debug", Usage: "enable request logging (overrides config and FOLIO_DEBUG)"},
	}
}

func runtimeConfig(c *cli.Context, env string, enableCache bool) folio.RuntimeConfig {
	cfg := folio.RuntimeConfig{
		Env:         env,
		EnableCache: enableCache,
		ConfigPath:  c.String("config"),
		Host:        c.String("host"),
		Port:        c.Int("port"),
	}
	if c.IsSet("debug") {
		debug := c.Bool("debug")
		cfg.Debug = &debug
	}
	return cfg
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start Folio in dev mode (no caching, live reload)",
	Flags: serveFlags(),
	Action: func(c *cli.Context) error {
		folio.Start(runtimeConfig(c, "dev", false))
		return nil
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start Folio in production mode (minified, cached pages)",
	Flags: serveFlags(),
	Action: func(c *cli.Context) error {
		folio.Start(runtimeConfig(c, "prod", true))
		return nil
	},
}
