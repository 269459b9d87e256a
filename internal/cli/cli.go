package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sprout/pkg/buildinfo"
	"github.com/matzehuels/sprout/pkg/preset"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sprout"

	// presetsFile is the user preset file looked up in the config directory.
	presetsFile = "presets.toml"
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

	// configPath is an extra preset file given with --config.
	configPath string
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
		Use:           appName,
		Short:         "Sprout grows L-system plants in the terminal",
		Long:          `Sprout expands symbol-rewriting grammars and animates the result with turtle graphics, revealing the drawing one symbol at a time.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.registerHooks(false)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "extra preset file (TOML)")

	root.AddCommand(c.growCommand())
	root.AddCommand(c.expandCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Presets
// =============================================================================

// catalog returns the built-in presets, overlaid with the user's preset file
// from the config directory and then the --config file.
func (c *CLI) catalog() (*preset.Catalog, error) {
	cat, err := preset.Builtin()
	if err != nil {
		return nil, err
	}
	if dir, err := configDir(); err == nil {
		path := filepath.Join(dir, presetsFile)
		if _, err := os.Stat(path); err == nil {
			c.Logger.Debug("loading presets", "path", path)
			if err := cat.LoadFile(path); err != nil {
				return nil, err
			}
		}
	}
	if c.configPath != "" {
		c.Logger.Debug("loading presets", "path", c.configPath)
		if err := cat.LoadFile(c.configPath); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/sprout/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
