// Command flagprune is the CLI collaborator: it parses command-line
// options, discovers files, and feeds them into the core transformation
// engine (internal/orchestrator), one file at a time.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/flagprune/internal/config"
	"github.com/standardbeagle/flagprune/internal/discover"
	"github.com/standardbeagle/flagprune/internal/flagerrors"
	"github.com/standardbeagle/flagprune/internal/format"
	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/mcpserver"
	"github.com/standardbeagle/flagprune/internal/orchestrator"
	"github.com/standardbeagle/flagprune/internal/parser"
	"github.com/standardbeagle/flagprune/internal/version"
	"github.com/standardbeagle/flagprune/pkg/pathutil"
)

func main() {
	app := &cli.App{
		Name:                   "flagprune",
		Usage:                  "remove resolved feature flags from source code",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "flag configuration file (JSON or .kdl)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "file or directory to transform",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "report what would change without writing files",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug-level logging",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "comma-separated glob patterns to exclude",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "re-run the transform whenever a target file is saved",
			},
			&cli.BoolFlag{
				Name:  "serve-mcp",
				Usage: "expose the engine as an MCP tool server instead of running once",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "flagprune:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if c.Bool("serve-mcp") {
		return runMCPServer(c)
	}

	target := c.String("target")
	if err := runOnce(c, logger); err != nil {
		return err
	}
	if c.Bool("watch") {
		return watchAndRerun(c, logger, target)
	}
	return nil
}

// runOnce performs a single discover-and-transform pass; watchAndRerun calls
// it directly on every filesystem event rather than re-entering run(), so
// the watch loop never nests another watcher inside itself.
func runOnce(c *cli.Context, logger *slog.Logger) error {
	flagConfig, warnings, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err // ConfigInvalid is fatal to the whole run.
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	orch := newOrchestrator()
	target := c.String("target")
	dryRun := c.Bool("dry-run")

	info, err := os.Stat(target)
	if err != nil {
		return flagerrors.NewIOError("stat", target, err)
	}

	var files []string
	workers := 0
	if info.IsDir() {
		settings, err := config.LoadToolSettings(target)
		if err != nil {
			return err
		}
		config.NewValidator().ApplyDefaults(&settings)
		workers = settings.Workers

		files, err = discover.Walk(discover.Options{
			Root:             target,
			ExcludeGlobs:     splitExcludes(c.StringSlice("exclude")),
			RespectGitignore: true,
		})
		if err != nil {
			return flagerrors.NewIOError("walk", target, err)
		}
	} else {
		files = []string{target}
	}

	fileResults := orchestrator.Run(context.Background(), orch, files, flagConfig, workers, os.ReadFile)

	var totalFlags, totalImports, totalLines int
	for _, fr := range fileResults {
		if fr.Err != nil {
			logger.Error("read failed", "path", fr.Path, "error", fr.Err)
			continue
		}
		result := fr.Result
		rel := pathutil.ToRelative(fr.Path, target)
		for _, w := range result.Warnings {
			logger.Warn(w, "path", rel)
		}

		if !result.HasChanges {
			continue
		}

		totalFlags += len(result.RemovedFlagNames)
		totalImports += len(result.RemovedImportURIs)
		totalLines += result.LinesRemoved

		if dryRun {
			fmt.Printf("Would modify %s: %d flag(s) removed, %d import(s) removed, %d line(s) removed\n",
				rel, len(result.RemovedFlagNames), len(result.RemovedImportURIs), result.LinesRemoved)
			continue
		}

		if err := os.WriteFile(fr.Path, []byte(result.TransformedSource), info.Mode().Perm()); err != nil {
			logger.Error("write failed", "path", fr.Path, "error", err)
			continue
		}
		fmt.Printf("%s: %d flag(s) removed, %d import(s) removed, %d line(s) removed\n",
			rel, len(result.RemovedFlagNames), len(result.RemovedImportURIs), result.LinesRemoved)
	}

	fmt.Printf("\ntotal: %d flag(s), %d import(s), %d line(s) across %d file(s)\n",
		totalFlags, totalImports, totalLines, len(files))

	return nil
}

func newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(parser.New(langprofile.Default()), format.NoOp)
}

func splitExcludes(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// watchAndRerun calls runOnce again on every write or create event that
// fsnotify reports for target. The watch is not recursive, and events are
// not debounced: each event triggers its own re-run.
func watchAndRerun(c *cli.Context, logger *slog.Logger, target string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return flagerrors.NewIOError("watch", target, err)
	}
	defer watcher.Close()

	if err := watcher.Add(target); err != nil {
		return flagerrors.NewIOError("watch", target, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", "target", target)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("change detected, re-running", "path", event.Name)
			if err := runOnce(c, logger); err != nil {
				logger.Error("re-run failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

func runMCPServer(c *cli.Context) error {
	settings, err := config.LoadToolSettings(".")
	if err != nil {
		return err
	}
	config.NewValidator().ApplyDefaults(&settings)

	srv := mcpserver.New(newOrchestrator())
	return srv.ListenAndServe(context.Background(), settings.MCPBindAddress)
}
