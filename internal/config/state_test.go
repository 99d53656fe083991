package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home", "state.yaml")

	st, err := LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, st.LastUsedVersion)

	require.NoError(t, SaveState(path, &State{LastUsedVersion: "0.4.0"}))

	st, err = LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, "0.4.0", st.LastUsedVersion)
}

func TestLoadState_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lastUsedVersion: [x\n"), 0o644))

	_, err := LoadState(path)
	assert.Error(t, err)
}
