package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/cmdutil"
	"github.com/easyrx/rxmvvm/internal/lifecycle"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/templates"
)

// NewLifecycleCmd creates the lifecycle command group.
func NewLifecycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifecycle",
		Short: "Manage route lifecycle files",
	}
	cmd.AddCommand(newLifecycleAddCmd())
	return cmd
}

func newLifecycleAddCmd() *cobra.Command {
	var f cmdutil.TargetFlags

	cmd := &cobra.Command{
		Use:   "add [filename]",
		Short: "Add a route lifecycle file",
		Long: fmt.Sprintf(`Write a route lifecycle base file to the target directory.

The file name defaults to %s; ".dart" is appended when missing.
With global checking on, a file of the same name elsewhere in the project
that already declares a State subclass is reused and nothing is written.
Same-named files that declare none get a numbered sibling instead.

Examples:
  rxmvvm lifecycle add --dir lib/core
  rxmvvm lifecycle add app_route_state`, lifecycle.DefaultFileName),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return withExitCode(runLifecycleAdd(cmd, name, &f))
		},
	}

	f.AddTo(cmd)

	return cmd
}

func runLifecycleAdd(cmd *cobra.Command, name string, f *cmdutil.TargetFlags) error {
	if err := requireConfig(); err != nil {
		return err
	}

	target, err := f.Resolve()
	if err != nil {
		return err
	}

	cache, err := openTemplateCache(rxConfig)
	if err != nil {
		return err
	}
	gen := newGenerator(rxConfig, target.Root, !f.NoGlobalCheck, cache)

	var result *templates.AddLifecycleResult
	err = f.Run(cmd.Context(), "Looking for lifecycle files", func(ctx context.Context) error {
		var addErr error
		result, addErr = gen.AddLifecycleFile(ctx, templates.AddLifecycleRequest{DestDir: target.Dir, FileName: name})
		return addErr
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if result.Reused {
		fmt.Fprintln(w, output.FormatFileLine(result.Path, output.StatusReused))
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Reusing %s", result.BaseClass)))
		return nil
	}
	fmt.Fprintln(w, output.FormatFileLine(result.Path, output.StatusCreated))
	fmt.Fprintln(w, output.FormatCheckmark("Lifecycle file created"))
	return nil
}
