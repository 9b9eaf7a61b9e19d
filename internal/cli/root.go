package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every command
type options struct {
	configPath string
	apiKey     string
	units      string
	baseURL    string
	logFile    string
	logLevel   string
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "weathersearch",
		Short: "Search current weather by city",
		Long: `weathersearch looks up the current weather for every city matching a name
and shows the matches in an interactive terminal screen.

Get an API key from https://openweathermap.org and set it with --api-key,
the OPENWEATHER_API_KEY environment variable or weather.api_key in the
config file.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (default is the user config dir)")
	flags.StringVar(&opts.apiKey, "api-key", "", "OpenWeatherMap API key")
	flags.StringVar(&opts.units, "units", "", "units: metric, imperial or standard")
	flags.StringVar(&opts.baseURL, "base-url", "", "weather service base URL")
	flags.StringVar(&opts.logFile, "log-file", "", `log file path ("-" for stderr)`)
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	// Add subcommands
	rootCmd.AddCommand(newSearchCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if version == "dev" || version == "" {
				version = "development"
			}
			if commit == "none" || commit == "" {
				commit = "local-build"
			}
			if date == "unknown" || date == "" {
				date = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "weathersearch %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
