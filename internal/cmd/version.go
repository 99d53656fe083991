package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show rxmvvm version information.

The version also names the template cache directory, so templates are
refreshed the first time a new version runs unless
autoUpdateTemplatesOnUpgrade is off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "rxmvvm version %s\n", info.Version)
			fmt.Fprintf(w, "  Commit:    %s\n", info.GitCommit)
			fmt.Fprintf(w, "  Built:     %s\n", info.BuildDate)
			fmt.Fprintf(w, "  Go:        %s\n", info.GoVersion)
			return nil
		},
	}
}
