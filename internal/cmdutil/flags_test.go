package cmdutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyrx/rxmvvm/internal/config"
	"github.com/easyrx/rxmvvm/internal/testutil"
	"github.com/easyrx/rxmvvm/internal/workspace"
)

func TestTargetFlags_AddTo(t *testing.T) {
	var tf TargetFlags
	cmd := &cobra.Command{Use: "test"}
	tf.AddTo(cmd)

	dirFlag := cmd.Flags().Lookup("dir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, "d", dirFlag.Shorthand)
	assert.Equal(t, ".", dirFlag.DefValue)

	rootFlag := cmd.Flags().Lookup("project-root")
	require.NotNil(t, rootFlag)
	assert.Equal(t, "", rootFlag.DefValue)

	checkFlag := cmd.Flags().Lookup("no-global-check")
	require.NotNil(t, checkFlag)
	assert.Equal(t, "bool", checkFlag.Value.Type())
}

func TestTargetFlags_Resolve(t *testing.T) {
	t.Run("finds the pubspec root", func(t *testing.T) {
		t.Setenv(workspace.EnvProjectRoot, "")
		root := testutil.NewFlutterProject(t, "shop", "lib/home")

		target, err := (&TargetFlags{Dir: filepath.Join(root, "lib", "home")}).Resolve()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "lib", "home"), target.Dir)
		assert.Equal(t, root, target.Root)
	})

	t.Run("relative dir is made absolute", func(t *testing.T) {
		t.Setenv(workspace.EnvProjectRoot, "")
		wd, err := os.Getwd()
		require.NoError(t, err)

		target, err := (&TargetFlags{Dir: "."}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, wd, target.Dir)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		envRoot := t.TempDir()
		flagRoot := t.TempDir()
		t.Setenv(workspace.EnvProjectRoot, envRoot)

		target, err := (&TargetFlags{Dir: t.TempDir(), ProjectRoot: flagRoot}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, flagRoot, target.Root)
	})

	t.Run("environment beats markers", func(t *testing.T) {
		envRoot := t.TempDir()
		t.Setenv(workspace.EnvProjectRoot, envRoot)
		root := testutil.NewFlutterProject(t, "shop", "lib/home")

		target, err := (&TargetFlags{Dir: filepath.Join(root, "lib", "home")}).Resolve()
		require.NoError(t, err)
		assert.Equal(t, envRoot, target.Root)
	})
}

func TestRouteFlags(t *testing.T) {
	var rf RouteFlags
	cmd := &cobra.Command{Use: "test"}
	rf.AddTo(cmd)

	require.NotNil(t, cmd.Flags().Lookup("route"))
	require.NotNil(t, cmd.Flags().Lookup("external"))

	assert.Equal(t, "", (&RouteFlags{}).Behavior())
	assert.Equal(t, config.RouteBuiltin, (&RouteFlags{Route: config.RouteBuiltin}).Behavior())
	assert.Equal(t, config.RouteExternal, (&RouteFlags{External: "lib/x.dart"}).Behavior())
	assert.Equal(t, config.RouteNone, (&RouteFlags{Route: config.RouteNone, External: "lib/x.dart"}).Behavior())
}

func TestTargetFlags_Run(t *testing.T) {
	t.Run("no timeout", func(t *testing.T) {
		f := TargetFlags{}
		err := f.Run(context.Background(), "working", func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("timeout bounds the action", func(t *testing.T) {
		f := TargetFlags{Timeout: 10 * time.Millisecond}
		err := f.Run(context.Background(), "working", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Contains(t, err.Error(), "--timeout 10ms")
	})

	t.Run("other errors pass through", func(t *testing.T) {
		want := errors.New("boom")
		f := TargetFlags{Timeout: time.Minute}
		assert.Equal(t, want, f.Run(context.Background(), "working", func(context.Context) error { return want }))
	})
}
