// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/config"
	oerrors "github.com/easyrx/rxmvvm/internal/errors"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/templates"
	"github.com/easyrx/rxmvvm/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded during PersistentPreRunE
	rxConfig   *config.Config
	cfgLoader  *config.Loader
	configPath config.ResolvedValue
	configErr  error
)

// NewRootCmd creates the root command for the rxmvvm CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rxmvvm",
		Short: "Scaffold RxMVVM pages for Flutter projects",
		Long: `rxmvvm generates page, view-model and route lifecycle files for Flutter
projects that follow the RxMVVM pattern.

Templates live in ~/.rxmvvm/templates_<version> and may be edited freely.
Configuration is read from ~/.rxmvvm/config.yaml and RXMVVM_* variables,
including any set in a .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: RXMVVM_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewLifecycleCmd())
	rootCmd.AddCommand(NewTemplatesCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads .env and configuration, then sets up logging. A
// broken config file does not fail here so that `config init --force` can
// repair it; commands that need the config call requireConfig.
func initializeGlobals(cmd *cobra.Command) error {
	envErr := godotenv.Load()
	if errors.Is(envErr, fs.ErrNotExist) {
		envErr = nil
	}

	resolved, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return withExitCode(oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory"))
	}
	configPath = resolved

	cfgLoader = config.NewLoader()
	rxConfig, configErr = cfgLoader.Load(configPath.String())
	if configErr != nil {
		rxConfig = config.DefaultConfig()
	}

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
		Writer:  cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if rxConfig.Log.Timestamps != nil {
		logCfg.Timestamps = rxConfig.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if envErr != nil {
		output.Warn("could not read .env", "err", envErr)
	}
	if configErr != nil {
		output.Debug("config load error", "error", configErr)
	}
	config.LogResolvedValues(configPath)

	return nil
}

// requireConfig fails when the config file could not be loaded.
func requireConfig() error {
	if configErr == nil {
		return nil
	}
	return &oerrors.DetailError{
		Type:     "invalid configuration",
		Message:  configErr.Error(),
		Location: configPath.String(),
		Hint:     "Fix the file or run 'rxmvvm config init --force' to start over.",
		Cause:    oerrors.ErrPrecondition,
	}
}

// newTemplateCache returns the cache for the running version without
// touching the disk.
func newTemplateCache() (*templates.Cache, *config.Paths, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	v := version.Get().CacheKey()
	cache := templates.NewCache(templates.CacheOptions{
		Dir:        paths.TemplatesDir(v),
		BackupsDir: paths.BackupsDir,
		Version:    v,
	})
	return cache, paths, nil
}

// openTemplateCache returns a populated cache, refreshing it first when this
// is the first run of a new version.
func openTemplateCache(cfg *config.Config) (*templates.Cache, error) {
	cache, paths, err := newTemplateCache()
	if err != nil {
		return nil, err
	}

	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		output.Warn("could not read state file, treating as first run", "path", paths.StateFile, "err", err)
		state = &config.State{}
	}

	v := version.Get().CacheKey()
	result, err := cache.SyncVersion(state.LastUsedVersion, cfg.AutoUpdateTemplatesOnUpgrade)
	if err != nil {
		return nil, err
	}
	if result.Refreshed && state.LastUsedVersion != "" {
		output.Info("templates refreshed for new version", "version", v, "backup", result.Snapshot)
	}
	if result.Upgraded {
		state.LastUsedVersion = v
		if err := config.SaveState(paths.StateFile, state); err != nil {
			output.Warn("could not record version", "path", paths.StateFile, "err", err)
		}
	}

	if err := cache.Ensure(); err != nil {
		return nil, err
	}
	return cache, nil
}
