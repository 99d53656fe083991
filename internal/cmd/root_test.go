package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyrx/rxmvvm/internal/config"
	"github.com/easyrx/rxmvvm/internal/version"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "rxmvvm", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{"config", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "lifecycle", "templates", "config", "version"})
}

func TestInitializeGlobals_LoadsConfig(t *testing.T) {
	home := setupHome(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "defaultRouteBehavior: builtin\n")

	_, _, err := executeCommand(t, "version")
	require.NoError(t, err)

	require.NoError(t, configErr)
	assert.Equal(t, config.RouteBuiltin, rxConfig.DefaultRouteBehavior)
	assert.Equal(t, filepath.Join(home, "config.yaml"), configPath.String())
	assert.Equal(t, config.SourceDefault, configPath.Source)
}

func TestInitializeGlobals_ConfigFlag(t *testing.T) {
	setupHome(t)
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "globalDuplicateCheckEnabled: false\n")

	_, _, err := executeCommand(t, "--config", custom, "version")
	require.NoError(t, err)

	assert.Equal(t, custom, configPath.String())
	assert.Equal(t, config.SourceFlag, configPath.Source)
	assert.False(t, rxConfig.GlobalDuplicateCheckEnabled)
}

func TestInitializeGlobals_BrokenConfigDeferred(t *testing.T) {
	home := setupHome(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "defaultRouteBehavior: sometimes\n")

	_, _, err := executeCommand(t, "version")
	require.NoError(t, err, "commands that do not need config still run")
	assert.Error(t, configErr)
	assert.Equal(t, config.DefaultConfig(), rxConfig)

	err = requireConfig()
	require.Error(t, err)
	assert.Equal(t, ExitPreconditionError, ExitCodeFromError(err))
}

func TestOpenTemplateCache_RecordsVersion(t *testing.T) {
	home := setupHome(t)

	cache, err := openTemplateCache(config.DefaultConfig())
	require.NoError(t, err)

	key := version.Get().CacheKey()
	assert.Equal(t, filepath.Join(home, "templates_"+key), cache.Dir())
	assert.FileExists(t, filepath.Join(cache.Dir(), "apppage.dart.tpl"))

	state, err := config.LoadState(filepath.Join(home, "state.yaml"))
	require.NoError(t, err)
	assert.Equal(t, key, state.LastUsedVersion)
}

func TestOpenTemplateCache_RefreshesOnUpgrade(t *testing.T) {
	home := setupHome(t)

	cache, err := openTemplateCache(config.DefaultConfig())
	require.NoError(t, err)
	edited := filepath.Join(cache.Dir(), "apppage.dart.tpl")
	writeFile(t, edited, "// edited\n")

	require.NoError(t, config.SaveState(filepath.Join(home, "state.yaml"), &config.State{LastUsedVersion: "0.0.1"}))

	_, err = openTemplateCache(config.DefaultConfig())
	require.NoError(t, err)
	assert.NotEqual(t, "// edited\n", readFile(t, edited), "cache refreshed from defaults")

	snapshots, err := filepath.Glob(filepath.Join(home, "templates_backups", "templates_*"))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "// edited\n", readFile(t, filepath.Join(snapshots[0], "apppage.dart.tpl")))
}

func TestOpenTemplateCache_NoAutoUpdateKeepsEdits(t *testing.T) {
	home := setupHome(t)

	cfg := config.DefaultConfig()
	cache, err := openTemplateCache(cfg)
	require.NoError(t, err)
	edited := filepath.Join(cache.Dir(), "apppage.dart.tpl")
	writeFile(t, edited, "// edited\n")
	require.NoError(t, config.SaveState(filepath.Join(home, "state.yaml"), &config.State{LastUsedVersion: "0.0.1"}))

	cfg.AutoUpdateTemplatesOnUpgrade = false
	_, err = openTemplateCache(cfg)
	require.NoError(t, err)
	assert.Equal(t, "// edited\n", readFile(t, edited))
}
