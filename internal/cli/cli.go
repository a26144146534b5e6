// Package cli implements the kintree command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "kintree"

	// configFileName is looked up in the config directory when --config is
	// not given.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag. Empty means the default location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "kintree lays out family trees",
		Long:         `kintree is a CLI tool for laying out family trees: generations in ranks, people on a circle, on a grid, or in rings around one person.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "layout config file (default: $XDG_CONFIG_HOME/kintree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	engine, err := c.newEngine()
	if err != nil {
		return nil, err
	}
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, newKeyer(), engine, c.Logger), nil
}

// newEngine builds a layout engine from the resolved config file.
func (c *CLI) newEngine() (*layout.Engine, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return layout.New(cfg), nil
}

// loadConfig reads --config, or the default config file when it exists.
// Without either, the default configuration is used.
func (c *CLI) loadConfig() (layout.Config, error) {
	path := c.ConfigPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return layout.DefaultConfig(), nil
		}
		path = filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err != nil {
			return layout.DefaultConfig(), nil
		}
	}

	cfg, err := layout.ReadConfigFile(path)
	if err != nil {
		return layout.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// newKeyer scopes cache keys by build version.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kintree/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/kintree/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the layout options shared by several commands.
type layoutFlags struct {
	strategy   string
	direction  string
	undirected bool
	growRings  bool
	unreached  string
	refresh    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", pipeline.DefaultStrategy, "layout strategy: hierarchical (default), circular, grid, radial")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", string(layout.TopBottom), "rank direction for hierarchical: TB (default), LR")
	cmd.Flags().BoolVar(&f.undirected, "undirected", false, "walk relationships both ways (radial)")
	cmd.Flags().BoolVar(&f.growRings, "grow-rings", false, "widen overfull rings instead of crowding them (radial)")
	cmd.Flags().StringVar(&f.unreached, "unreached", string(layout.UnreachedKeep), "people the radial walk never reaches: keep (default), ring")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// options converts the flags to pipeline options, rejecting unknown
// strategies early so typos fail before any work is done.
func (f *layoutFlags) options() (pipeline.Options, error) {
	if _, err := layout.ParseStrategy(f.strategy); err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Strategy:   f.strategy,
		Direction:  f.direction,
		Undirected: f.undirected,
		GrowRings:  f.growRings,
		Unreached:  f.unreached,
		Refresh:    f.refresh,
	}
	return opts, opts.ValidateForLayout()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// outputBase derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input, along with a
// ".layout" suffix. A known format extension on output is stripped too.
func outputBase(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// isLayoutFile reports whether path names a computed layout rather than a
// family tree.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(path, ".layout.json")
}
