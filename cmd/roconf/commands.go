package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/roconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGetCommand(flags *loadFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value at a key path",
		Long: `Print the value at a key path. Scalars are printed as is,
mappings and sequences as indented JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			v := cfg.Lookup(args[0])
			switch v.Kind() {
			case roconfig.KindMissing:
				return fmt.Errorf("%w: %s", roconfig.ErrKeyNotFound, args[0])
			case roconfig.KindScalar:
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			default:
				return writeJSON(cmd.OutOrStdout(), v.Raw())
			}
		},
	}
}

func newKeysCommand(flags *loadFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [key]",
		Short: "List the keys of the root or of the mapping at a key path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			node := cfg
			if len(args) == 1 {
				if node, err = cfg.Lookup(args[0]).Mapping(); err != nil {
					return err
				}
			}
			for _, key := range node.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

func newFlatCommand(flags *loadFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "flat",
		Short: "Print every leaf as key=value, keyed by override path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			flat := cfg.Flatten()
			keys := make([]string, 0, len(flat))
			for key := range flat {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", key, flat[key])
			}
			return nil
		},
	}
}

func newEnvCommand(flags *loadFlags) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print every scalar leaf as NAME=value for the environment",
		Long: `Print every scalar leaf as an environment variable assignment.
Reading the output back with --env-prefix and --strip-prefix targets the same
paths when keys are lower-case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			exports := cfg.ExportEnv(prefix)
			names := make([]string, 0, len(exports))
			for name := range exports {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, exports[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix prepended to every variable name")
	return cmd
}

func newDumpCommand(flags *loadFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the merged configuration to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), cfg.Values(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml, toml)")
	return cmd
}

func dump(w io.Writer, values map[string]any, format string) error {
	switch format {
	case "json":
		return writeJSON(w, values)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(values); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
