package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/merit/pkg/config"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration as TOML",
				Action: runConfigShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidate,
			},
		},
	}
}

// resolveConfig loads --config when given, otherwise searches the
// standard locations.
func resolveConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := resolveConfig(c.String("config"))
	if err != nil {
		return err
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(content))
	return nil
}

func runConfigValidate(c *cli.Context) error {
	cfg, err := resolveConfig(c.String("config"))
	if err != nil {
		color.Red("Configuration load failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	if err := cfg.Validate(); err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	color.Green("Configuration valid")
	return nil
}
