package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lixenwraith/roconfig"
	"github.com/spf13/cobra"
)

// loadFlags holds the source flags shared by every subcommand
type loadFlags struct {
	files         []string
	optionalFiles []string
	env           bool
	envPrefix     string
	stripPrefix   bool
	overrides     []string
	logLevel      string
}

func newRootCommand() *cobra.Command {
	flags := &loadFlags{}

	rootCmd := &cobra.Command{
		Use:   "roconf",
		Short: "Inspect merged hierarchical configuration",
		Long: `roconf merges configuration files, environment variables and overrides
into one tree and prints values from it.

Sources are applied in order: --file, --optional-file, environment, --set.
Override keys use ':' or '__' as path separators.

Example:
  roconf --file app.yaml --env --env-prefix APP_ --strip-prefix get db:host
  roconf --file app.ini --set server:port=9090 dump --format toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringArrayVarP(&flags.files, "file", "f", nil, "configuration file (ini, json, yaml, toml); repeatable")
	pf.StringArrayVar(&flags.optionalFiles, "optional-file", nil, "configuration file that may be absent; repeatable")
	pf.BoolVar(&flags.env, "env", false, "read environment variables")
	pf.StringVar(&flags.envPrefix, "env-prefix", "", "only read environment variables with this prefix")
	pf.BoolVar(&flags.stripPrefix, "strip-prefix", false, "strip --env-prefix from variable names")
	pf.StringArrayVar(&flags.overrides, "set", nil, "override as key=value; repeatable")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newGetCommand(flags),
		newKeysCommand(flags),
		newFlatCommand(flags),
		newEnvCommand(flags),
		newDumpCommand(flags),
	)

	return rootCmd
}

// load builds the configuration described by the flags, logging to w.
func (f *loadFlags) load(w io.Writer) (*roconfig.Config, error) {
	logger := newLogger(f.logLevel, w)

	b := roconfig.NewBuilder().WithLogger(logger)
	for _, path := range f.files {
		b.WithFile(path, false)
	}
	for _, path := range f.optionalFiles {
		b.WithFile(path, true)
	}
	if f.env || f.envPrefix != "" {
		b.WithEnv(f.envPrefix, f.stripPrefix)
	}
	for _, override := range f.overrides {
		key, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", override)
		}
		b.WithValue(key, value)
	}

	return b.Build()
}

func newLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
