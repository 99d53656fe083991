package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easyrx/rxmvvm/internal/output"
)

// NewTemplatesCmd creates the templates command group.
func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the template cache",
		Long: `Manage the editable template cache.

Templates are copied to ~/.rxmvvm/templates_<version> on first use. Edit them
there to change what generate writes. Snapshots are kept in
~/.rxmvvm/templates_backups.`,
	}

	cmd.AddCommand(
		newTemplatesPathCmd(),
		newTemplatesResetCmd(),
		newTemplatesBackupCmd(),
		newTemplatesBackupResetCmd(),
		newTemplatesRestoreCmd(),
		newTemplatesListCmd(),
	)
	return cmd
}

func newTemplatesPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the template cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openTemplateCache(rxConfig)
			if err != nil {
				return withExitCode(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return nil
		},
	}
}

func newTemplatesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in templates, discarding edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _, err := newTemplateCache()
			if err != nil {
				return withExitCode(err)
			}
			if err := cache.Reset(); err != nil {
				return withExitCode(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Templates reset: "+cache.Dir()))
			return nil
		},
	}
}

func newTemplatesBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the template cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _, err := newTemplateCache()
			if err != nil {
				return withExitCode(err)
			}
			snapshot, err := cache.Backup()
			if err != nil {
				return withExitCode(err)
			}
			printSnapshot(cmd, snapshot)
			return nil
		},
	}
}

func newTemplatesBackupResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup-reset",
		Short: "Snapshot the template cache, then restore the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _, err := newTemplateCache()
			if err != nil {
				return withExitCode(err)
			}
			snapshot, err := cache.BackupAndReset()
			if err != nil {
				return withExitCode(err)
			}
			printSnapshot(cmd, snapshot)
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Templates reset: "+cache.Dir()))
			return nil
		},
	}
}

func newTemplatesRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot>",
		Short: "Replace the template cache with a snapshot",
		Long: `Replace the template cache with a snapshot.

<snapshot> is a name from 'rxmvvm templates list' or a directory path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _, err := newTemplateCache()
			if err != nil {
				return withExitCode(err)
			}
			if err := cache.Restore(args[0]); err != nil {
				return withExitCode(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Templates restored from "+args[0]))
			return nil
		},
	}
}

func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List template snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, _, err := newTemplateCache()
			if err != nil {
				return withExitCode(err)
			}
			snapshots, err := cache.ListBackups()
			if err != nil {
				return withExitCode(err)
			}
			if len(snapshots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups found.")
				return nil
			}

			tbl := output.NewTable("NAME", "CREATED", "PATH")
			for _, s := range snapshots {
				tbl.Row(s.Name, s.ModTime.Format("2006-01-02 15:04:05"), s.Path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return nil
		},
	}
}

func printSnapshot(cmd *cobra.Command, snapshot string) {
	if snapshot == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No template cache to back up.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Backup saved: "+snapshot))
}
