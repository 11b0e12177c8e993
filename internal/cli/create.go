package cli

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/manifest"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
)

var createCmd = &cobra.Command{
	Use:     "create \"<label>\"",
	Aliases: []string{"new"},
	Short:   "Create a new numbered snapshot of the project tree",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if err := ensureInitialized(root); err != nil {
			return err
		}

		snapsRoot := snap.Dir(root)
		if err := fsio.MkdirAll(snapsRoot, 0o755); err != nil {
			return fmt.Errorf("create snapshots directory: %w", err)
		}

		rules := ignore.Resolve(root, devMode)
		label := strings.Join(args, " ")
		index := snap.NextIndex(snapsRoot)

		folder, err := snap.Create(root, index, label, rules)
		if err != nil {
			return err
		}

		// The snapshot itself is already on disk; a manifest failure is
		// reported but does not undo it.
		if err := manifest.Record(snapsRoot, index, label, rules); err != nil {
			log.Warnf("manifest: %v", err)
		}

		fmt.Printf("Created snapshot %s\n", folder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
