package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/config"
	oerrors "github.com/easyrx/rxmvvm/internal/errors"
	"github.com/easyrx/rxmvvm/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rxmvvm configuration",
		Long: `Manage rxmvvm configuration.

Values are read from the config file (default ~/.rxmvvm/config.yaml) and
may be overridden per key with RXMVVM_* environment variables, e.g.
RXMVVM_DEFAULTROUTEBEHAVIOR=builtin.`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigShowCmd(),
		newConfigSetRouteCmd(),
		newConfigToggleGlobalCheckCmd(),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Write the default configuration file.

Examples:
  # Initialize configuration
  rxmvvm config init

  # Overwrite existing configuration
  rxmvvm config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath.String()

			exists, err := config.FileExists(path)
			if err != nil {
				return withExitCode(err)
			}
			if exists && !force {
				return withExitCode(oerrors.NewPreconditionError(
					"configuration already exists", path,
					"Use --force to overwrite existing configuration."))
			}

			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return withExitCode(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration written: "+path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration and where each value comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfig(); err != nil {
				return withExitCode(err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Config file: %s (%s)\n", configPath.String(), configPath.Source)

			tbl := output.NewTable("KEY", "VALUE", "SOURCE", "ENV")
			for _, v := range cfgLoader.Describe() {
				tbl.Row(v.Key, formatValue(v.Value), string(v.Source), config.EnvName(v.Key))
			}
			fmt.Fprintln(w, tbl.String())
			return nil
		},
	}
}

func newConfigSetRouteCmd() *cobra.Command {
	var external string

	cmd := &cobra.Command{
		Use:   "set-route <behavior>",
		Short: "Set the default route lifecycle behavior",
		Long: fmt.Sprintf(`Set defaultRouteBehavior in the config file.

Behaviors: %s.

Examples:
  rxmvvm config set-route builtin
  rxmvvm config set-route external --external lib/core/route_state.dart`,
			strings.Join(config.RouteBehaviors(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withExitCode(runConfigSetRoute(cmd, args[0], external))
		},
	}

	cmd.Flags().StringVar(&external, "external", "", "Default lifecycle file for the external behavior")
	return cmd
}

func runConfigSetRoute(cmd *cobra.Command, behavior, external string) error {
	if !slices.Contains(config.RouteBehaviors(), behavior) {
		return oerrors.NewPreconditionError(
			fmt.Sprintf("unknown route behavior %q", behavior), "",
			fmt.Sprintf("Valid behaviors: %s", strings.Join(config.RouteBehaviors(), ", ")))
	}

	path := configPath.String()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return oerrors.NewPreconditionError(err.Error(), path,
			"Fix the file or run 'rxmvvm config init --force' to start over.")
	}

	cfg.DefaultRouteBehavior = behavior
	if external != "" {
		cfg.DefaultExternalRoutePath = external
	}
	if behavior == config.RouteExternal && cfg.DefaultExternalRoutePath == "" {
		return oerrors.NewPreconditionError(
			"the external behavior needs a lifecycle file", path,
			"Pass --external <file>.")
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	msg := "Default route behavior: " + behavior
	if behavior == config.RouteExternal {
		msg += " (" + cfg.DefaultExternalRoutePath + ")"
	}
	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark(msg))
	return nil
}

func newConfigToggleGlobalCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-global-check",
		Short: "Turn the project-wide name conflict scan on or off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath.String()
			cfg, err := config.LoadFile(path)
			if err != nil {
				return withExitCode(oerrors.NewPreconditionError(err.Error(), path,
					"Fix the file or run 'rxmvvm config init --force' to start over."))
			}

			cfg.GlobalDuplicateCheckEnabled = !cfg.GlobalDuplicateCheckEnabled
			if err := config.Save(path, cfg); err != nil {
				return withExitCode(err)
			}

			state := "off"
			if cfg.GlobalDuplicateCheckEnabled {
				state = "on"
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Global duplicate check: "+state))
			return nil
		},
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
