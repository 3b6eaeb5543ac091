package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "merit",
		Usage:   "Per-author contribution scorecards for git repositories",
		Version: version,
		Description: `Merit walks a repository's commit history inside a date window,
measures each target author's change volume and the quality of the
lines they added, and renders a scorecard combining both.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"MERIT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			scoreCmd(),
			configCmd(),
		},
	}
}

