package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/nanogen/internal/config"
	"github.com/mrz1836/nanogen/internal/constants"
	"github.com/mrz1836/nanogen/internal/tui"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newConfigCmd(flags))
}

func newConfigCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect nanogen configuration",
	}
	cmd.AddCommand(newConfigShowCmd(flags))
	return cmd
}

func newConfigShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective nanogen configuration as YAML.

Values come from, highest precedence first:
  - env: NANOGEN_* environment variables (dots become underscores)
  - project: .nanogen/config.yaml
  - global: ~/.nanogen/config.yaml
  - default: built-in defaults

Examples:
  nanogen config show
  nanogen config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// configShowOutput is the JSON shape of config show.
type configShowOutput struct {
	Config  map[string]any          `json:"config"`
	Sources map[string]ConfigSource `json:"sources"`
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, w io.Writer, flags *GlobalFlags) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	ctx = GetLogger().WithContext(ctx)
	cfg, err := config.LoadWithOverrides(ctx, flags.ConfigPath, nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	projectPath := flags.ConfigPath
	if projectPath == "" {
		projectPath = config.ProjectConfigPath()
	}
	globalPath, _ := config.GlobalConfigPath()

	sources, err := configSources(data, loadConfigKeys(projectPath), loadConfigKeys(globalPath))
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		var values map[string]any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to decode configuration: %w", err)
		}
		return tui.NewJSONOutput(w).JSON(configShowOutput{Config: values, Sources: sources})
	}

	tui.CheckNoColor()
	styles := tui.NewOutputStyles()

	_, _ = fmt.Fprintln(w, tui.StyleBold.Render("Effective nanogen configuration"))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, string(data))

	overridden := make([]string, 0, len(sources))
	for key, src := range sources {
		if src != SourceDefault {
			overridden = append(overridden, key)
		}
	}
	sort.Strings(overridden)

	_, _ = fmt.Fprintln(w)
	if len(overridden) == 0 {
		_, _ = fmt.Fprintln(w, styles.Dim.Render("All values are built-in defaults."))
	} else {
		_, _ = fmt.Fprintln(w, styles.Dim.Render("Overridden values:"))
		for _, key := range overridden {
			_, _ = fmt.Fprintf(w, "  %-28s %s\n", key, styles.Info.Render(string(sources[key])))
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.Dim.Render("Configuration files:"))
	printConfigFile(w, styles, "Global", globalPath)
	printConfigFile(w, styles, "Project", projectPath)

	return nil
}

// configSources attributes every key of the effective config to its source.
func configSources(effective []byte, project, global map[string]bool) (map[string]ConfigSource, error) {
	keys, err := flattenYAMLKeys(effective)
	if err != nil {
		return nil, err
	}

	sources := make(map[string]ConfigSource, len(keys))
	for key := range keys {
		sources[key] = determineSource(key, project, global)
	}
	return sources, nil
}

// determineSource determines where a configuration value came from.
func determineSource(key string, project, global map[string]bool) ConfigSource {
	envKey := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(envKey); ok {
		return SourceEnv
	}
	if project[key] {
		return SourceProject
	}
	if global[key] {
		return SourceGlobal
	}
	return SourceDefault
}

// loadConfigKeys returns the dotted keys set in the config file at path.
// A missing or unreadable file sets no keys.
func loadConfigKeys(path string) map[string]bool {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}
	keys, err := flattenYAMLKeys(data)
	if err != nil {
		return nil
	}
	return keys
}

// flattenYAMLKeys returns the dotted paths of every leaf in a YAML mapping.
func flattenYAMLKeys(data []byte) (map[string]bool, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	keys := make(map[string]bool)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if nested, ok := v.(map[string]any); ok {
				walk(key, nested)
				continue
			}
			keys[key] = true
		}
	}
	walk("", root)
	return keys, nil
}

func printConfigFile(w io.Writer, styles *tui.OutputStyles, label, path string) {
	if path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if _, err := os.Stat(path); err != nil {
		_, _ = fmt.Fprintln(w, styles.Dim.Render(fmt.Sprintf("  %s: %s (not found)", label, path)))
		return
	}
	_, _ = fmt.Fprintln(w, styles.Dim.Render(fmt.Sprintf("  %s: ", label))+path)
}
