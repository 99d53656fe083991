package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/cmdutil"
	"github.com/easyrx/rxmvvm/internal/config"
	oerrors "github.com/easyrx/rxmvvm/internal/errors"
	"github.com/easyrx/rxmvvm/internal/lifecycle"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/scan"
	"github.com/easyrx/rxmvvm/internal/templates"
	"github.com/easyrx/rxmvvm/internal/workspace"
)

type generateFlags struct {
	target cmdutil.TargetFlags
	route  cmdutil.RouteFlags
	kinds  []string
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:     "generate <name>",
		Aliases: []string{"gen"},
		Short:   "Generate a page and its view model",
		Long: `Generate RxMVVM files for <name> in the target directory.

The name may use any casing: "user profile", "user_profile" and "UserProfile"
all produce UserProfilePage in user_profile_page.dart and
UserProfileViewModel in user_profile_viewmodel.dart.

Route lifecycle behaviors:
  none      page state extends State
  builtin   reuse a route_lifecycle_state*.dart from the project, or
            generate one next to the page
  external  use the lifecycle class declared in --external, falling
            back to builtin when the file declares none
  ask       default; same as none, but --kinds lifecycle generates
            the builtin lifecycle file

Nothing is written when any output name already exists in the target
directory, or elsewhere in the project while global checking is on.

Examples:
  # Page and view model in lib/home
  rxmvvm generate home --dir lib/home

  # Page with route lifecycle hooks
  rxmvvm generate "user profile" --dir lib/profile --route builtin

  # Only the lifecycle file
  rxmvvm generate home --kinds lifecycle`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withExitCode(runGenerate(cmd, args[0], &f))
		},
	}

	f.target.AddTo(cmd)
	f.route.AddTo(cmd)
	cmd.Flags().StringSliceVar(&f.kinds, "kinds", nil, "Templates to generate: page, state-holder, lifecycle (default page,state-holder)")

	return cmd
}

func runGenerate(cmd *cobra.Command, name string, f *generateFlags) error {
	if err := requireConfig(); err != nil {
		return err
	}
	cfg := rxConfig

	kinds, err := templates.ParseKinds(f.kinds)
	if err != nil {
		return oerrors.NewPreconditionError(err.Error(), "", "")
	}

	route := config.Resolve(config.ResolveOptions{
		Key:         config.KeyRouteBehavior,
		FlagValue:   f.route.Behavior(),
		EnvVar:      config.EnvName(config.KeyRouteBehavior),
		ConfigValue: fileValue(config.KeyRouteBehavior, cfg.DefaultRouteBehavior),
		Default:     config.RouteAsk,
	})
	config.LogResolvedValues(route)

	mode, err := routeMode(route, slices.Contains(kinds, templates.KindLifecycle))
	if err != nil {
		return err
	}

	target, err := f.target.Resolve()
	if err != nil {
		return err
	}

	var externalPath string
	if mode == lifecycle.ModeExternal {
		external := config.Resolve(config.ResolveOptions{
			Key:         config.KeyExternalRoutePath,
			FlagValue:   f.route.External,
			EnvVar:      config.EnvName(config.KeyExternalRoutePath),
			ConfigValue: cfg.DefaultExternalRoutePath,
		})
		config.LogResolvedValues(external)
		externalPath = workspace.ResolveExternal(external.String(), target.Root, target.Dir)
	}

	cache, err := openTemplateCache(cfg)
	if err != nil {
		return err
	}
	gen := newGenerator(cfg, target.Root, !f.target.NoGlobalCheck, cache)

	req := templates.GenerationRequest{
		Name:         name,
		DestDir:      target.Dir,
		Kinds:        kinds,
		Mode:         mode,
		ExternalPath: externalPath,
	}

	var result *templates.GenerateResult
	err = f.target.Run(cmd.Context(), fmt.Sprintf("Generating %s", name), func(ctx context.Context) error {
		var genErr error
		result, genErr = gen.Instantiate(ctx, req)
		return genErr
	})
	if err != nil {
		return err
	}

	printGenerateResult(cmd.OutOrStdout(), result)
	return nil
}

// fileValue returns value only when the loaded config file sets key, so
// built-in defaults resolve as SourceDefault.
func fileValue(key, value string) string {
	if cfgLoader == nil || !cfgLoader.InConfig(key) {
		return ""
	}
	return value
}

// routeMode maps a route behavior to a lifecycle mode. An unset behavior and
// "ask" yield the empty mode, which the generator treats as builtin only
// when the lifecycle template was requested. A stored "none" yields to an
// explicit lifecycle kind; only --route none conflicts with it.
func routeMode(route config.ResolvedValue, wantLifecycle bool) (lifecycle.Mode, error) {
	if route.Source == config.SourceDefault {
		return "", nil
	}

	behavior := route.String()
	if behavior == config.RouteAsk {
		if wantLifecycle {
			return "", nil
		}
		output.Info("route behavior is ask, generating without lifecycle hooks",
			"hint", "pass --route builtin or --route external")
		return "", nil
	}

	mode, err := lifecycle.ParseMode(behavior)
	if err != nil {
		return "", oerrors.NewPreconditionError(err.Error(), "",
			fmt.Sprintf("Valid behaviors: %v", config.RouteBehaviors()))
	}
	if mode == lifecycle.ModeNone && wantLifecycle && route.Source != config.SourceFlag {
		output.Debug("stored route behavior none overridden by lifecycle kind", "source", route.Source)
		return "", nil
	}
	return mode, nil
}

// newGenerator wires a generator for root. An empty root disables every
// project-wide search.
func newGenerator(cfg *config.Config, root string, globalCheck bool, sources templates.SourceProvider) *templates.Generator {
	scanner := scan.New(scan.Options{
		Root:       root,
		Exclude:    cfg.Scan.Exclude,
		MaxResults: cfg.Scan.MaxResults,
	})
	detector := lifecycle.NewDetector(0)

	return templates.NewGenerator(templates.Options{
		Scanner:               scanner,
		Detector:              detector,
		Resolver:              lifecycle.NewResolver(scanner, detector, cfg.Scan.LifecycleMaxResults),
		Sources:               sources,
		GlobalCheckEnabled:    cfg.GlobalDuplicateCheckEnabled && globalCheck,
		GlobalCheckRoutesOnly: cfg.GlobalDuplicateCheckRoutesOnly,
	})
}

func printGenerateResult(w io.Writer, result *templates.GenerateResult) {
	files := make(map[string]string, len(result.Files))
	hasPage := false
	for _, f := range result.Files {
		files[f.Name] = output.StatusCreated
		if f.Kind == templates.KindPage {
			hasPage = true
		}
	}

	fmt.Fprint(w, output.RenderFileTree(result.DestDir, files))
	if result.Decision.Outcome == lifecycle.OutcomeReuse {
		fmt.Fprintln(w, output.FormatFileLine(result.Decision.SourcePath, output.StatusReused))
	}

	msg := fmt.Sprintf("Generated %d file(s)", len(result.Files))
	if hasPage {
		msg += fmt.Sprintf(", page state extends %s", result.Decision.BaseClass)
	}
	fmt.Fprintln(w, output.FormatCheckmark(msg))
}
