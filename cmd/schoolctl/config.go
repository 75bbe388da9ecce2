// Config loading for the schoolctl CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/webdekho/schoolctl/internal/paths"
	"github.com/webdekho/schoolctl/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyAPIRoot      = "api_root"
	cfgKeyToken        = "token"
	cfgKeyCacheDir     = "cache_dir"
	cfgKeyAcademicYear = "academic_year"

	envPrefix = "SCHOOLCTL"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# schoolctl configuration

# Base URL of the school management REST API
# api_root: https://school.example.com/api

# Bearer token for API access
# token:

# Default academic year applied to report exports
# academic_year:

# Query cache directory (optional; overridable by --cache-dir flag)
# cache_dir:
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error; flags and environment can
// supply everything.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// resolveClientConfig builds the client Config following the precedence
// chain flag > environment > config.yaml for every value.
func resolveClientConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		APIRoot:        v.GetString(cfgKeyAPIRoot),
		Token:          v.GetString(cfgKeyToken),
		AcademicYearID: v.GetString(cfgKeyAcademicYear),
	}
	if flags.apiRoot != "" {
		cfg.APIRoot = flags.apiRoot
	}
	if flags.token != "" {
		cfg.Token = flags.token
	}

	cacheDir, err := paths.ResolveCacheDir(flags.cacheDir, v.GetString(cfgKeyCacheDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve cache dir: %w", err)
	}
	cfg.CacheDir = cacheDir

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("configuration: %w (set api_root and token in %s or pass --api-root/--token)", err, filepath.Join(configDir, configFileExt))
	}
	return cfg, nil
}
