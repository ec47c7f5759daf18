package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/buildinfo"
	"github.com/matzehuels/scenedoc/pkg/pipeline"
	"github.com/matzehuels/scenedoc/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "scenedoc"

	// envRedisAddr and envMongoURI select a shared document store.
	envRedisAddr = "SCENEDOC_REDIS_ADDR"
	envMongoURI  = "SCENEDOC_MONGO_URI"
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
		Short:        "scenedoc serializes 3D scene graphs into vtk.js documents",
		Long:         `scenedoc reads scene descriptions (JSON, YAML or TOML), walks the scene graph and writes a self-contained vtk.js-style JSON document that a web viewer can load.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, publishing to the local
// file store unless noStore is set.
func (c *CLI) newRunner(noStore bool) (*pipeline.Runner, error) {
	s, err := newFileStore(noStore)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store.Instrument(s, "file"), nil, c.Logger), nil
}

func newFileStore(noStore bool) (store.Store, error) {
	if noStore {
		return store.NewNullStore(), nil
	}
	dir, err := store.DefaultDir()
	if err != nil {
		return store.NewNullStore(), nil
	}
	return store.NewFileStore(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
