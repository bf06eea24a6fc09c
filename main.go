package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/sumz/internal/history"
	"github.com/dtnitsch/sumz/internal/summarize"
	"github.com/dtnitsch/sumz/internal/tui"
	"github.com/dtnitsch/sumz/models"
	"github.com/dtnitsch/sumz/pkg/help"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sumz",
		Usage: "Summarize articles and keep a local history of them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   models.DefaultConfigPath,
				EnvVars: []string{"SUMZ_CONFIG"},
				Usage:   "Path to the YAML config file",
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Summarization provider: rapidapi, extractive or openai (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep history in memory only for this run",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to a rotating file instead of stderr",
			},
		},
		Action: tui.TUIAction,
		Commands: []*cli.Command{
			{
				Name:      "summarize",
				Aliases:   []string{"s"},
				Usage:     "Summarize one or more article URLs and add them to history",
				ArgsUsage: "URL [URL...]",
				Flags:     []cli.Flag{newFormatFlag()},
				Action:    summarize.SummarizeAction,
			},
			{
				Name:    "history",
				Aliases: []string{"ls"},
				Usage:   "List summarized articles, most recent first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   0,
						Usage:   "Show at most N articles (0 for all)",
					},
					newFormatFlag(),
				},
				Action: history.HistoryAction,
			},
			{
				Name:      "show",
				Usage:     "Show a history item in full",
				ArgsUsage: "N",
				Flags:     []cli.Flag{newFormatFlag()},
				Action:    history.ShowAction,
			},
			{
				Name:      "copy",
				Usage:     "Copy the URL of a history item to the clipboard",
				ArgsUsage: "N",
				Action:    history.CopyAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
			{
				Name:   "tui",
				Usage:  "Start the interactive terminal UI (default)",
				Action: tui.TUIAction,
			},
		},
	}
}

func newFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: text, json or yaml",
	}
}
