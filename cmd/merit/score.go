package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/merit/internal/analyzer"
	"github.com/panbanda/merit/internal/history"
	"github.com/panbanda/merit/internal/output"
	"github.com/panbanda/merit/internal/progress"
	"github.com/panbanda/merit/internal/report"
	"github.com/panbanda/merit/pkg/config"
	"github.com/panbanda/merit/pkg/models"
)

func scoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Score contributors' commits inside a date window",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to the git repository",
			},
			&cli.StringSliceFlag{
				Name:    "authors",
				Aliases: []string{"a"},
				Usage:   "Target author names (matched as substrings)",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "Window start date, inclusive (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "until",
				Usage: "Window end date, inclusive (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-export",
				Usage: "Skip the xlsx export",
			},
			&cli.StringFlag{
				Name:  "export-dir",
				Usage: "Directory for the xlsx export",
			},
		},
		Action: runScore,
	}
}

func runScore(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(c.String("config"))
	if err != nil {
		return err
	}
	applyScoreFlags(c, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Repo.Authors) == 0 {
		return errors.New("no target authors: pass --authors or set repo.authors in the config")
	}
	if cfg.Window.Since == "" || cfg.Window.Until == "" {
		return errors.New("no analysis window: pass --since and --until or set them in the config")
	}

	window, err := models.ParseWindow(cfg.Window.Since, cfg.Window.Until)
	if err != nil {
		return err
	}

	extractor, err := history.Open(cfg.Repo.Path)
	if err != nil {
		return err
	}

	console, err := output.NewFormatter(output.FormatText, "", cfg.Output.Color)
	if err != nil {
		return err
	}
	console.Info("Analyzing %s (branch: %s)", extractor.Path(), extractor.Branch())
	console.Info("Period: %s", window.Label())
	console.Info("Authors: %s", strings.Join(cfg.Repo.Authors, ", "))

	// Spinner while the commit log is walked; once the matched authors are
	// known the first hook call swaps it for a bounded tracker.
	bar := progress.NewSpinner("Scanning commit history...")
	tracking := false
	ca := analyzer.NewContributionAnalyzer(extractor,
		analyzer.WithIssueDetector(analyzer.NewIssueDetector(
			analyzer.WithDuplicateMinLength(cfg.Thresholds.DuplicateMinLength),
			analyzer.WithDuplicateWindow(cfg.Thresholds.DuplicateWindow),
		)),
		analyzer.WithStructuralAnalyzer(analyzer.NewStructuralAnalyzer(
			analyzer.WithComplexityThreshold(cfg.Thresholds.CyclomaticComplexity),
			analyzer.WithNestingThreshold(cfg.Thresholds.NestingDepth),
		)),
		analyzer.WithWeights(cfg.Weights.Quality, cfg.Weights.Quantity),
		analyzer.WithAuthorHook(func(name string, index, total int) {
			if !tracking {
				bar.FinishSuccess()
				bar = progress.NewTracker("Analyzing contributors", total)
				tracking = true
			}
			bar.Describe(fmt.Sprintf("Analyzing %s...", name))
			bar.Tick()
		}),
	)
	defer ca.Close()

	records, err := ca.AnalyzeContext(ctx, cfg.Repo.Authors, window)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoCommits) {
			bar.FinishSuccess()
			console.Warning("No commits found for the target authors in %s", window.Label())
			return nil
		}
		bar.FinishError(err)
		return err
	}
	bar.FinishSuccess()

	table := report.Scorecard(records)

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	display := table
	if formatter.Format() == output.FormatText && formatter.Colored() {
		display = report.ColoredScorecard(records)
	}
	if err := formatter.Output(display); err != nil {
		return err
	}

	// Exports always take the plain table.
	if cfg.Export.Enabled {
		path, err := report.Export(cfg.Export.Dir, table)
		if err != nil {
			console.Warning("Export failed: %v", err)
		} else {
			console.Success("Scorecard exported to %s", path)
		}
	}

	return nil
}

// applyScoreFlags layers explicit command-line flags over the loaded
// config.
func applyScoreFlags(c *cli.Context, cfg *config.Config) {
	if repo := c.String("repo"); repo != "" {
		cfg.Repo.Path = repo
	}
	if authors := c.StringSlice("authors"); len(authors) > 0 {
		cfg.Repo.Authors = authors
	}
	if since := c.String("since"); since != "" {
		cfg.Window.Since = since
	}
	if until := c.String("until"); until != "" {
		cfg.Window.Until = until
	}
	if c.Bool("no-export") {
		cfg.Export.Enabled = false
	}
	if dir := c.String("export-dir"); dir != "" {
		cfg.Export.Dir = dir
	}
	// --format carries a default value, so only an explicit flag wins
	// over the config file.
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
}
