// Command recipebox is a terminal recipe catalog and editor.
//
// Usage:
//
//	recipebox [--dataset file] [--verbose] [--quiet]
//	recipebox list [--search text]
//	recipebox show <ref>
//	recipebox validate <file>
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/recipebox/internal/config"
	"github.com/hammamikhairi/recipebox/internal/conversation"
	"github.com/hammamikhairi/recipebox/internal/dataset"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/engine"
	"github.com/hammamikhairi/recipebox/internal/imageenc"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/recipe"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "recipebox",
		Short:        "Browse and edit a recipe catalog in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, runInteractive)
		},
	}

	pf := root.PersistentFlags()
	pf.String(config.KeyConfig, "", "config file (default ./recipebox.yaml)")
	pf.String(config.KeyDataset, "", "recipe dataset file (.json, .yaml, .toml); bundled dataset if empty")
	pf.String(config.KeyLogLevel, "normal", "log level: off, normal, verbose")
	pf.Bool(config.KeyVerbose, false, "enable verbose/debug logging")
	pf.Bool(config.KeyQuiet, false, "disable all logging")
	pf.String(config.KeyLogFile, config.DefaultLogFile, "file to write logs to (use \"stderr\" to log to console)")
	pf.Int64(config.KeyMaxImageBytes, imageenc.DefaultMaxBytes, "largest image file that can be attached")
	pf.Bool(config.KeyExpanded, false, "show every card's ingredients")

	root.AddCommand(newListCmd(), newShowCmd(), newValidateCmd())
	return root
}

// runtime bundles everything a command needs.
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	ctrl   *engine.Controller
	styled bool
}

// withRuntime loads config, opens the log sink, seeds the store and
// calls fn.
func withRuntime(cmd *cobra.Command, fn func(context.Context, *runtime) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logOut, closeLog := openLogOutput(cfg.LogFile)
	defer closeLog()

	// Route the standard log package to the same sink so nothing
	// writes over the display.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(cfg.LogLevel, logOut)

	seed, err := loadDataset(cfg.Dataset)
	if err != nil {
		log.Error("loading dataset: %v", err)
		return err
	}
	log.Info("loaded %d recipes", len(seed))

	store := recipe.NewMemoryStore(log.Named("store"), recipe.WithSeed(seed))

	var opts []engine.Option
	if cfg.Expanded {
		opts = append(opts, engine.WithExpanded())
	}
	ctrl := engine.New(store, log.Named("controller"), opts...)

	rt := &runtime{
		cfg:    cfg,
		log:    log,
		ctrl:   ctrl,
		styled: isTerminal(os.Stdout),
	}
	return fn(cmd.Context(), rt)
}

func loadDataset(path string) ([]domain.Recipe, error) {
	if path == "" {
		return dataset.Bundled()
	}
	return dataset.LoadFile(path)
}

// openLogOutput opens path for appending. Logs go to a file by default
// so the REPL stays clean.
func openLogOutput(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runInteractive starts the REPL. Bubble Tea owns the terminal; the
// command loop and the image encoder run alongside it.
func runInteractive(ctx context.Context, rt *runtime) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui := display.NewUI(rt.ctrl)
	notifier := conversation.NewCLINotifier(rt.log.Named("notify"), ui.PrintChat, ui.PrintUrgent)

	app := &cliApp{
		ctrl:     rt.ctrl,
		parser:   conversation.NewKeywordParser(rt.log.Named("parser")),
		notifier: notifier,
		log:      rt.log,
		ui:       ui,
		styled:   rt.styled,
		width:    display.TermWidth,
	}

	encoder := imageenc.New(
		func(res imageenc.Result) { app.imageDone(ctx, res) },
		rt.log.Named("images"),
		imageenc.WithMaxBytes(rt.cfg.MaxImageBytes),
	)
	encoder.Start(ctx)
	defer encoder.Stop()
	app.images = encoder

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := ui.Run(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ui.Ready():
		case <-gctx.Done():
			return nil
		}
		app.run(gctx, ui.InputChan())
		ui.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		rt.log.Error("%v", err)
		return err
	}
	return nil
}
