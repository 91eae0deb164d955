package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/maze-tools-mcp/internal/grid"
	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
	"github.com/ironsheep/maze-tools-mcp/internal/server"
)

const (
	configFileName = "maze-mcp"
	configFileType = "yaml"
	envPrefix      = "MAZE_MCP"

	// Config keys; flags use the same names with '_' replaced by '-'.
	keyThreshold       = "threshold"
	keyThresholdPolicy = "threshold-policy"
	keyMaxDimension    = "max-dimension"
	keyAdaptive        = "adaptive"
	keyLuminance       = "luminance"
	keyLogLevel        = "log-level"

	defaultThreshold       = grid.DefaultThreshold
	defaultThresholdPolicy = string(grid.ThresholdFixed)
	defaultMaxDimension    = grid.DefaultMaxDimension
	defaultLuminance       = string(imaging.LuminanceRec601)
)

// loadConfig merges, in increasing priority: defaults, the config file,
// MAZE_MCP_* environment variables and command-line flags.
// A missing config file is not an error.
func loadConfig(cmd *cobra.Command, configFile string) (server.Config, error) {
	v := viper.New()
	v.SetDefault(keyThreshold, defaultThreshold)
	v.SetDefault(keyThresholdPolicy, defaultThresholdPolicy)
	v.SetDefault(keyMaxDimension, defaultMaxDimension)
	v.SetDefault(keyAdaptive, false)
	v.SetDefault(keyLuminance, defaultLuminance)
	v.SetDefault(keyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return server.Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "maze-mcp"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return server.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return configFromViper(v)
}

// configFromViper converts resolved settings into a validated server.Config.
func configFromViper(v *viper.Viper) (server.Config, error) {
	cfg := server.DefaultConfig()
	cfg.Version = Version

	lum, err := imaging.ParseLuminance(v.GetString(keyLuminance))
	if err != nil {
		return server.Config{}, err
	}

	cfg.Build.Threshold = v.GetInt(keyThreshold)
	cfg.Build.ThresholdPolicy = grid.ThresholdPolicy(v.GetString(keyThresholdPolicy))
	cfg.Build.MaxDimension = v.GetInt(keyMaxDimension)
	cfg.Build.AdaptiveSizing = v.GetBool(keyAdaptive)
	cfg.Build.Luminance = lum

	switch level := strings.ToLower(v.GetString(keyLogLevel)); level {
	case "debug":
		cfg.Debug = true
	case "", "info":
	default:
		return server.Config{}, fmt.Errorf("unknown log level: %s", level)
	}

	if err := cfg.Build.Validate(); err != nil {
		return server.Config{}, err
	}
	return cfg, nil
}
