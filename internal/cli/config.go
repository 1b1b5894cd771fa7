package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "SHELF"
	dotEnvFile     = ".env"

	cfgKeySeedFile   = "seed_file"
	cfgKeyLateDays   = "late_days"
	cfgKeyLogLevel   = "log_level"
	cfgKeyExportPath = "export_path"
)

// loadConfig resolves the config directory, loads .env from the working
// directory, and reads config.yaml with SHELF_* environment overrides.
// A missing config.yaml or .env is not an error. Flags win over everything.
func loadConfig(flags rootFlags) (types.Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return types.Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	lateDays, err := cast.ToIntE(v.Get(cfgKeyLateDays))
	if err != nil {
		return types.Config{}, fmt.Errorf("%w: %w: late_days %q is not a number",
			errUsage, types.ErrInvalidArgument, v.GetString(cfgKeyLateDays))
	}

	cfg := types.Config{
		SeedFile:   v.GetString(cfgKeySeedFile),
		LateDays:   lateDays,
		LogLevel:   v.GetString(cfgKeyLogLevel),
		ExportPath: v.GetString(cfgKeyExportPath),
	}
	if flags.seedFile != "" {
		cfg.SeedFile = flags.seedFile
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	return cfg, nil
}

// newViper returns a Viper instance with defaults, the config file location,
// and environment bindings set. export_path is not bound to the environment:
// SHELF_EXPORT_PATH ranks below config.yaml and is read by paths.ResolveExportPath.
func newViper(configDir string) *viper.Viper {
	defaults := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeySeedFile, defaults.SeedFile)
	v.SetDefault(cfgKeyLateDays, defaults.LateDays)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
	v.SetDefault(cfgKeyExportPath, defaults.ExportPath)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeySeedFile, cfgKeyLateDays, cfgKeyLogLevel} {
		_ = v.BindEnv(key)
	}
	return v
}

// configPath returns the config.yaml path inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
