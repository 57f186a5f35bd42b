package main

import (
	"log"
	"os"

	foliocli "github.com/go-barry/folio/cli"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "folio",
		Usage: "A four-page portfolio site with named routes",
		Commands: []*clilib.Command{
			foliocli.InitCommand,
			foliocli.DevCommand,
			foliocli.ProdCommand,
			foliocli.CleanCommand,
			foliocli.CheckCommand,
			foliocli.InfoCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
