package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	Version = "1.0.0"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "networks"
	app.Usage = "Inspect and check smart-contract deployment networks"
	app.Version = Version
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		ConfigFlag,
		SecretsFlag,
		VerbosityFlag,
	}
	app.Commands = []*cli.Command{
		&listCommand,
		&showCommand,
		&checkCommand,
		&serveCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
