package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variable prefix for rxmvvm configuration.
const envPrefix = "RXMVVM"

// Config keys.
const (
	KeyGlobalCheck         = "globalDuplicateCheckEnabled"
	KeyGlobalCheckRoutes   = "globalDuplicateCheckRoutesOnly"
	KeyRouteBehavior       = "defaultRouteBehavior"
	KeyExternalRoutePath   = "defaultExternalRoutePath"
	KeyAutoUpdateTemplates = "autoUpdateTemplatesOnUpgrade"
	KeyScanExclude         = "scan.exclude"
	KeyScanMaxResults      = "scan.maxResults"
	KeyScanLifecycleMax    = "scan.lifecycleMaxResults"
	KeyLogTimestamps       = "log.timestamps"
)

// Keys returns every config key in display order.
func Keys() []string {
	return []string{
		KeyGlobalCheck,
		KeyGlobalCheckRoutes,
		KeyRouteBehavior,
		KeyExternalRoutePath,
		KeyAutoUpdateTemplates,
		KeyScanExclude,
		KeyScanMaxResults,
		KeyScanLifecycleMax,
		KeyLogTimestamps,
	}
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader creates a new configuration loader with defaults registered.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault(KeyGlobalCheck, def.GlobalDuplicateCheckEnabled)
	v.SetDefault(KeyGlobalCheckRoutes, def.GlobalDuplicateCheckRoutesOnly)
	v.SetDefault(KeyRouteBehavior, def.DefaultRouteBehavior)
	v.SetDefault(KeyExternalRoutePath, def.DefaultExternalRoutePath)
	v.SetDefault(KeyAutoUpdateTemplates, def.AutoUpdateTemplatesOnUpgrade)
	v.SetDefault(KeyScanExclude, def.Scan.Exclude)
	v.SetDefault(KeyScanMaxResults, def.Scan.MaxResults)
	v.SetDefault(KeyScanLifecycleMax, def.Scan.LifecycleMaxResults)

	// No default: nil means "on unless --timestamps says otherwise".
	_ = v.BindEnv(KeyLogTimestamps)

	return &Loader{v: v}
}

// Load loads configuration from the given file path. If configFile is empty
// the default path is used. A missing file is not an error. Environment
// variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		paths, err := DefaultPaths()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
		configFile = paths.ConfigFile
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", expandedPath, err)
	}

	return &cfg, nil
}

// Path returns the config file path used by the last Load.
func (l *Loader) Path() string {
	return l.path
}

// InConfig reports whether the config file read by the last Load sets key.
func (l *Loader) InConfig(key string) bool {
	return l.v.InConfig(key)
}

// Describe reports the effective value of every key and where it came from.
// Call after Load.
func (l *Loader) Describe() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(Keys()))
	for _, key := range Keys() {
		rv := ResolvedValue{Key: key, Value: l.v.Get(key), Source: SourceDefault}
		switch {
		case envSet(key):
			rv.Source = SourceEnv
		case l.v.InConfig(key):
			rv.Source = SourceConfig
		}
		if rv.Value == nil {
			rv.Value = "(unset)"
		}
		values = append(values, rv)
	}
	return values
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvName(key))
	return ok
}

// LoadFile reads only the config file at path, ignoring the environment, so
// edits can be saved back without persisting RXMVVM_* overrides. A missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories. Keys keep
// their camelCase spelling so the file stays readable.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FileExists reports whether the config file at path exists.
func FileExists(path string) (bool, error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
