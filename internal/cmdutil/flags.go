// Package cmdutil provides flag groups shared by the generating commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/config"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/workspace"
)

// TargetFlags holds flags that choose where files are written and which
// project is scanned (generate, lifecycle add).
type TargetFlags struct {
	Dir           string
	ProjectRoot   string
	NoGlobalCheck bool
	Timeout       time.Duration
}

// AddTo registers the target flags on the given cobra command.
func (f *TargetFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Dir, "dir", "d", ".",
		"Target directory")
	cmd.Flags().StringVar(&f.ProjectRoot, "project-root", "",
		fmt.Sprintf("Project root for global checks (env: %s)", workspace.EnvProjectRoot))
	cmd.Flags().BoolVar(&f.NoGlobalCheck, "no-global-check", false,
		"Skip the project-wide scan")
	cmd.Flags().DurationVar(&f.Timeout, "timeout", 0,
		"Give up after this long, e.g. 30s (0 waits indefinitely)")
}

// Run executes action under a spinner titled title, bounded by --timeout.
func (f *TargetFlags) Run(ctx context.Context, title string, action func(context.Context) error) error {
	opts := []output.SpinnerOption{output.WithTitle(title)}
	if f.Timeout > 0 {
		opts = append(opts, output.WithTimeout(f.Timeout))
	}
	err := output.RunWithSpinner(ctx, action, opts...)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gave up after --timeout %s: %w", f.Timeout, err)
	}
	return err
}

// Target is a resolved destination.
type Target struct {
	// Dir is the absolute target directory. It may not exist.
	Dir string

	// Root is the project root, "" when none was found.
	Root string
}

// Resolve makes the target directory absolute and locates the project root
// with --project-root > RXMVVM_PROJECT_ROOT > .git > pubspec.yaml.
func (f *TargetFlags) Resolve() (Target, error) {
	dir, err := filepath.Abs(f.Dir)
	if err != nil {
		return Target{}, fmt.Errorf("resolving target directory: %w", err)
	}

	override := config.Resolve(config.ResolveOptions{
		Key:       "projectRoot",
		FlagValue: f.ProjectRoot,
		EnvVar:    workspace.EnvProjectRoot,
	})
	if override.Source != "" {
		config.LogResolvedValues(override)
	}

	root, ok := workspace.Locate(dir, override.String())
	if !ok {
		output.Debug("no project root found, global checks disabled", "dir", dir)
	}
	return Target{Dir: dir, Root: root}, nil
}

// RouteFlags holds the route lifecycle flags of generate.
type RouteFlags struct {
	Route    string
	External string
}

// AddTo registers the route flags on the given cobra command.
func (f *RouteFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Route, "route", "",
		fmt.Sprintf("Route lifecycle behavior: ask, none, builtin, external (env: %s)",
			config.EnvName(config.KeyRouteBehavior)))
	cmd.Flags().StringVar(&f.External, "external", "",
		fmt.Sprintf("Lifecycle file for the external behavior; implies --route external (env: %s)",
			config.EnvName(config.KeyExternalRoutePath)))
}

// Behavior returns the route flag value, or "external" when only --external
// was given.
func (f *RouteFlags) Behavior() string {
	if f.Route == "" && f.External != "" {
		return config.RouteExternal
	}
	return f.Route
}
