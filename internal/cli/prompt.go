package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/diff"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/report"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <index>",
	Short: "Generate an LLM analysis prompt for changes since a snapshot",
	Long: `Diff a snapshot against the current tree and render the result as an
analysis-ready Markdown prompt in __snapshots__/. The prompt path is the
last line of output so editor integrations can open it directly.`,
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
		padded := util.PadIndex(index, config.IndexWidth)

		rules := ignore.Resolve(root, devMode)
		res := diff.Compare(filepath.Join(snapsRoot, folder), root, rules)
		res.Compare = "current"

		if _, err := report.WriteDiffArtifact(snapsRoot,
			fmt.Sprintf("diff_%s_to_current.json", padded), res); err != nil {
			return err
		}

		label := strings.TrimPrefix(folder, padded+"_")
		path, err := report.WritePrompt(snapsRoot, padded, label, res)
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
