// Package main is the entry point for the instaquran CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"instaquran/cmd/instaquran/studio"
	"instaquran/cmd/instaquran/ui"
	"instaquran/internal/config"
	"instaquran/internal/export"
	"instaquran/internal/logging"
	"instaquran/internal/render"
	"instaquran/internal/validation"
	"instaquran/internal/verse"
)

// Version information set via ldflags during build.
var version = "dev"

// Global flags and the configuration resolved from them.
type globals struct {
	configPath string
	workspace  string
	verbose    bool
	timeout    time.Duration

	cfg *config.Config
}

// Collaborators are built through these so tests can run commands offline.
var (
	newFetcher = func(cfg *config.Config) studio.Fetcher {
		return verse.NewClient(
			verse.WithBaseURL(cfg.API.BaseURL),
			verse.WithTranslation(cfg.API.TranslationID),
			verse.WithTimeout(cfg.GetAPITimeout()),
		)
	}
	newRasterizer = func(cfg *config.Config) render.Rasterizer {
		return render.NewBrowserRasterizer(render.Config{
			Scale:       cfg.Render.Scale,
			ChromeBin:   cfg.Render.ChromeBin,
			DebuggerURL: cfg.Render.DebuggerURL,
			Headless:    cfg.Render.Headless,
			Timeout:     cfg.GetRenderTimeout(),
		})
	}
	newClipboard = func() studio.Clipboard {
		return export.NewClipboardSink()
	}
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "instaquran",
		Short: "Turn a Quran verse into a shareable image",
		Long: `instaquran renders a verse as an Instagram post or story card.

Run without arguments to open the interactive studio: type a chapter and verse,
pick a background and format, then save the PNG or copy it to the clipboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.CloseAll()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudio(g)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: WORKSPACE/.instaquran/config.yaml)")
	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace directory (default: current)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().DurationVar(&g.timeout, "timeout", 0, "Overall timeout for one-shot commands (default: api + render timeouts)")

	cmd.AddCommand(generateCmd(g))
	cmd.AddCommand(validateCmd(g))
	cmd.AddCommand(configCmd(g))
	return cmd
}

// resolveWorkspace returns the absolute workspace directory.
func (g *globals) resolveWorkspace() (string, error) {
	ws := g.workspace
	if ws == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		ws = wd
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace %q: %w", ws, err)
	}
	g.workspace = abs
	return abs, nil
}

func (g *globals) resolveConfigPath() string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.DefaultPath(g.workspace)
}

// load reads .env, the config file and the environment, then starts logging.
func (g *globals) load() error {
	ws, err := g.resolveWorkspace()
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(filepath.Join(ws, ".env")); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(g.resolveConfigPath())
	if err != nil {
		return err
	}
	if g.verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	g.cfg = cfg

	if err := logging.Initialize(ws, cfg.LoggingOptions()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Boot("instaquran %s, workspace %s", version, ws)
	return nil
}

// commandContext bounds a one-shot command by --timeout, or by the configured fetch and
// render timeouts when the flag is unset.
func (g *globals) commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	d := g.timeout
	if d <= 0 {
		d = g.cfg.GetAPITimeout() + g.cfg.GetRenderTimeout()
	}
	return context.WithTimeout(parent, d)
}

func (g *globals) outputDir() string {
	dir := g.cfg.Output.Dir
	if dir == "" || dir == "." {
		return g.workspace
	}
	if !filepath.IsAbs(dir) {
		return filepath.Join(g.workspace, dir)
	}
	return dir
}

func runStudio(g *globals) error {
	m := studio.New(studio.Deps{
		Validator:    validation.Default(),
		Fetcher:      newFetcher(g.cfg),
		Rasterizer:   newRasterizer(g.cfg),
		Saver:        export.DownloadSink{Dir: g.outputDir()},
		Clipboard:    newClipboard(),
		InputDelay:   g.cfg.GetInputDebounce(),
		PreviewDelay: g.cfg.GetPreviewDebounce(),
		Styles:       ui.DefaultStyles(),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	return nil
}
