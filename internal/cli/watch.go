package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [\"<label prefix>\"]",
	Short: "Snapshot automatically whenever the tree settles after changes",
	Long: `Watch the project tree and create a snapshot each time a burst of
changes settles. Snapshots are labeled with the given prefix (default
"auto") plus a timestamp. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if err := ensureInitialized(root); err != nil {
			return err
		}

		prefix := "auto"
		if len(args) == 1 {
			prefix = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Printf("Watching %s (debounce %s, Ctrl-C to stop)\n", root, config.WatchDebounce())
		return watch.New(root, prefix, devMode, config.WatchDebounce()).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
