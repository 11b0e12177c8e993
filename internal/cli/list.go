package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored snapshots",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		infos := snap.List(snap.Dir(root))
		if len(infos) == 0 {
			fmt.Println("No snapshots yet.")
			return nil
		}

		for _, info := range infos {
			fmt.Printf("%s  %s\n", util.PadIndex(info.Index, config.IndexWidth), info.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
