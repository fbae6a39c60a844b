package main

import "github.com/urfave/cli/v2"

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "YAML configuration file, defaults apply when empty",
		EnvVars: []string{"CONFIG_PATH"},
	}
	SecretsFlag = &cli.StringFlag{
		Name:  "secrets",
		Usage: "JSON file holding mnemonic and projectId, overrides secrets.path from config",
	}
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level: debug, info, warn, error. Overrides logging.level from config",
	}
	JSONFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of a table",
	}
	AllFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Check every configured network",
	}
	AddrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Listen address, overrides server.port from config",
	}
)
