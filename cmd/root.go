package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/iodocs/internal/config"
)

var (
	cfgFile string
	verbose bool
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "iodocs",
	Short: "Documentation site router and server",
	Long: `iodocs resolves "#!/<section>/<page>" routes against a documentation
page index and serves the navigation shell, syntax-highlighted partials and
a live route API for browsers and AI agents.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
		slog.SetDefault(logger)
	},
}

// Execute runs the root command with styled help and error output.
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithVersion(Version))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger returns a text logger on stderr; stdout is reserved for
// command output and the MCP protocol.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
