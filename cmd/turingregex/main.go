package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"turingregex/internal/config"
	"turingregex/internal/log"
)

var cfg *config.Config

func main() {
	app := &cli.App{
		Name:  "turingregex",
		Usage: "compile regular expressions into Turing machine transition tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file `PATH` (default: ./turingregex.yaml)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every compilation stage",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			compileCommand,
			runCommand,
			dotCommand,
			serveCommand,
			alphabetCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func setup(c *cli.Context) error {
	log.SetStd()
	var err error
	cfg, err = config.Load(c.String("config"))
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)
	if c.Bool("verbose") {
		log.SetLevel("debug")
	}
	return nil
}
