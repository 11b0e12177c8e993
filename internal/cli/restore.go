package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/restore"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
)

var restoreDryRun bool

var restoreCmd = &cobra.Command{
	Use:   "restore <index>",
	Short: "Restore the project tree from a snapshot",
	Long: `Restore the working tree to the state of a snapshot: changed and missing
files are copied back, files not present in the snapshot are deleted.
With --dry-run every intended action is reported but nothing changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if err := ensureInitialized(root); err != nil {
			return err
		}

		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		snapsRoot := snap.Dir(root)
		folder, err := snap.FindByIndex(snapsRoot, index)
		if err != nil {
			return err
		}

		if restoreDryRun {
			fmt.Printf("Restoring snapshot %s (dry run)\n", folder)
		} else {
			fmt.Printf("Restoring snapshot %s\n", folder)
		}

		rules := ignore.Resolve(root, devMode)
		c := restore.Run(filepath.Join(snapsRoot, folder), root, rules, restoreDryRun)

		fmt.Println()
		if restoreDryRun {
			fmt.Printf("Dry run complete. %d file(s) would be restored, %d skipped, %d would be deleted.\n",
				c.Restored, c.Skipped, c.Deleted)
		} else {
			fmt.Printf("Restore complete. %d file(s) restored, %d skipped, %d deleted.\n",
				c.Restored, c.Skipped, c.Deleted)
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "report intended actions without touching the filesystem")
	rootCmd.AddCommand(restoreCmd)
}
