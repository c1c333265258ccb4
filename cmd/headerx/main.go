package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jorge-barreto/headerx/internal/config"
	"github.com/jorge-barreto/headerx/internal/docs"
	"github.com/jorge-barreto/headerx/internal/extract"
	"github.com/jorge-barreto/headerx/internal/scaffold"
	"github.com/jorge-barreto/headerx/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func main() {
	out := ux.Stdio(true)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(out).Run(ctx, os.Args); err != nil {
		out.Error(err)
		os.Exit(1)
	}
}

func newApp(out *ux.Printer) *cli.Command {
	return &cli.Command{
		Name:      "headerx",
		Usage:     "Extract headers from mixed files (header + c code)",
		ArgsUsage: "<source_file>...",
		Description: "Header portion must start with a line '//HEADERX(<header filename>,<header tag>)'.\n" +
			"Header portion must end with '//ENDX'.\n" +
			"Both starting at the beginning of the line.\n\n" +
			"Run 'headerx docs' for the marker grammar, output layout and config file.",
		Writer:    out.Out,
		ErrWriter: out.Err,
		// The stock help flag reads a positional argument as a help topic,
		// so `headerx mix.c -h` would fail. -h must win wherever it appears.
		HideHelp: true,
		Flags: []cli.Flag{
			helpFlag(),
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose output"},
			&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Usage: "Fail when a //HEADERX block has no //ENDX"},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "Resolve header file names against `DIR`"},
			&cli.BoolFlag{Name: "no-line", Usage: "Do not emit #line directives"},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "List headers without writing them"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config `FILE` (default " + config.DefaultFile + ")"},
		},
		Commands: []*cli.Command{
			initCmd(out),
			docsCmd(out),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("help") {
				return cli.ShowRootCommandHelp(cmd)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			out.Color = out.Color && cfg.WantColor() && !cmd.Bool("no-color")

			opts, err := buildOptions(cmd, cfg)
			if err != nil {
				return err
			}

			x := extract.New(opts, out)
			sum, err := x.Run(ctx, cmd.Args().Slice())
			if err != nil {
				return err
			}
			if opts.Verbose || opts.DryRun {
				out.Summary(sum.Files, sum.Headers, opts.DryRun)
			}
			return nil
		},
	}
}

func helpFlag() cli.Flag {
	return &cli.BoolFlag{Name: "help", Aliases: []string{"h"}, Usage: "Displays this help"}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadDefault(".")
}

// buildOptions layers command-line flags over the config file.
func buildOptions(cmd *cli.Command, cfg *config.Config) (extract.Options, error) {
	opts := extract.Options{
		OutputDir:      cfg.OutputDir,
		LineDirectives: cfg.WantLineDirectives(),
		Strict:         cfg.Strict,
		Verbose:        cfg.Verbose,
		DryRun:         cmd.Bool("dry-run"),
	}
	if cmd.IsSet("output-dir") {
		opts.OutputDir = cmd.String("output-dir")
		if err := config.Validate(&config.Config{OutputDir: opts.OutputDir}); err != nil {
			return opts, fmt.Errorf("--output-dir: %w", err)
		}
	}
	if cmd.Bool("strict") {
		opts.Strict = true
	}
	if cmd.Bool("no-line") {
		opts.LineDirectives = false
	}
	if cmd.Bool("verbose") {
		opts.Verbose = true
	}
	return opts, nil
}

func initCmd(out *ux.Printer) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default " + config.DefaultFile + " and an example source file",
		Flags: []cli.Flag{helpFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("help") {
				return cli.ShowSubcommandHelp(cmd)
			}
			out.Color = out.Color && !cmd.Bool("no-color")
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, out)
		},
	}
}

func docsCmd(out *ux.Printer) *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Flags:     []cli.Flag{helpFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("help") {
				return cli.ShowSubcommandHelp(cmd)
			}
			name := cmd.Args().First()
			if name == "" {
				fmt.Fprint(out.Out, "\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Fprintf(out.Out, "  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Fprintln(out.Out, "\nRun 'headerx docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprint(out.Out, t.Content)
			return nil
		},
	}
}
