package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/spin/internal/config"
	spinerrors "github.com/tessro/spin/internal/errors"
	"github.com/tessro/spin/internal/wizard"
)

var configInitDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing spin configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file. When attached to a terminal, a short
form asks for the main settings; otherwise defaults are written.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  player.playlist      Playlist file played by default
  player.volume        Initial volume (0-100)
  player.shuffle       Start with shuffle enabled (true/false)
  player.repeat        Repeat mode (off/all/track)
  engine.sample_rate   Output sample rate in Hz
  engine.buffer_ms     Output buffer length in milliseconds
  engine.tick_interval Progress update interval in milliseconds
  tui.theme            Color theme (auto/dark/light)
  tui.status_timeout   How long status messages stay, in milliseconds (-1 keeps them)
  log.level            Log level (debug/info/warn/error)
  log.file             Log file path

Examples:
  spin config set player.playlist ~/music/evening.toml
  spin config set player.volume 60`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPickCmd = &cobra.Command{
	Use:   "pick [dir]",
	Short: "Interactively select the default playlist",
	Long:  `Shows a picker of the playlist files in a directory (default: current directory).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigPick,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "Write defaults without prompting")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPickCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeys maps each settable key to the kind of value it holds.
var configKeys = map[string]string{
	"player.playlist":      "string",
	"player.volume":        "int",
	"player.shuffle":       "bool",
	"player.repeat":        "string",
	"engine.sample_rate":   "int",
	"engine.buffer_ms":     "int",
	"engine.tick_interval": "int",
	"tui.theme":            "string",
	"tui.status_timeout":   "int",
	"log.level":            "string",
	"log.file":             "string",
}

const configHeader = "# Spin Configuration\n# https://github.com/tessro/spin\n\n"

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), cfg)
	}

	encoder := toml.NewEncoder(cmd.OutOrStdout())
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	_, err := os.Stat(path)
	exists := err == nil

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"path":   path,
			"exists": exists,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	if !exists && Verbose() {
		fmt.Fprintln(cmd.OutOrStdout(), "(not created yet; run 'spin config init')")
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	newCfg := config.Default()
	if !configInitDefaults && !JSONOutput() && wizard.IsTerminal() {
		if err := runInitForm(newCfg); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
	}
	if err := newCfg.Validate(); err != nil {
		return err
	}

	if err := writeConfig(configPath, newCfg); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
	fmt.Fprintln(cmd.OutOrStdout(), "  1. Run 'spin config pick <dir>' to choose a playlist")
	fmt.Fprintln(cmd.OutOrStdout(), "  2. Run 'spin play'")
	return nil
}

// runInitForm asks for the main settings, starting from c's values.
func runInitForm(c *config.Config) error {
	volume := strconv.Itoa(c.Player.Volume)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default playlist").
				Description("Path to a playlist file; leave empty for the built-in sampler").
				Value(&c.Player.Playlist),
			huh.NewInput().
				Title("Volume").
				Description("0-100").
				Value(&volume).
				Validate(validateVolume),
			huh.NewSelect[string]().
				Title("Repeat").
				Options(huh.NewOptions("off", "all", "track")...).
				Value(&c.Player.Repeat),
			huh.NewConfirm().
				Title("Shuffle by default?").
				Value(&c.Player.Shuffle),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions("auto", "dark", "light")...).
				Value(&c.TUI.Theme),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	c.Player.Volume, _ = strconv.Atoi(volume)
	return nil
}

func validateVolume(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("enter a number from 0 to 100")
	}
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindConfigFile(); path != "" {
		return path
	}
	return config.DefaultPath()
}

func writeConfig(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	if err := setConfigValue(configPath, key, value); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// setConfigValue updates one key in the config file at path, creating the
// file if needed. The file is left untouched if the result does not
// validate.
func setConfigValue(path, key, value string) error {
	kind, ok := configKeys[key]
	if !ok {
		return spinerrors.WithSuggestion(
			fmt.Errorf("unknown config key %q", key),
			"Run 'spin config set --help' for the list of keys",
		)
	}

	var typed any
	switch kind {
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typed = i
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value must be true or false for %s", key)
		}
		typed = b
	default:
		typed = value
	}

	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// Created below
	default:
		return fmt.Errorf("failed to read config: %w", err)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = map[string]any{}
		raw[section] = sectionMap
	}
	sectionMap[field] = typed

	// Check the result before touching the file
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	check := &config.Config{}
	if _, err := toml.Decode(buf.String(), check); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	check.ApplyDefaults()
	if err := check.Validate(); err != nil {
		return err
	}

	return writeConfig(path, raw)
}

func runConfigPick(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = expandHome(args[0])
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	entries, err := wizard.Scan(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no playlist files found in %s", dir)
	}

	interactive := wizard.NewInteractive()
	interactive.SetEntries(entries, cfg.Player.Playlist)
	if !interactive.CanInteract() {
		return fmt.Errorf("config pick needs a terminal; use 'spin config set player.playlist <path>' instead")
	}

	selected, err := interactive.PromptPlaylist()
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	if err := setConfigValue(getConfigPath(), "player.playlist", selected.Path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default playlist: %s (%s)\n", selected.Name, selected.Path)
	return nil
}
