package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/diff"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/report"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

var diffCmd = &cobra.Command{
	Use:   "diff <index> [<index>]",
	Short: "Compare a snapshot against the current tree, or two snapshots",
	Long: `Compare a snapshot against the current working tree, or against a second
snapshot when two indexes are given. The classified result is written as a
JSON artifact into __snapshots__/; its path is the last line of output.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if err := ensureInitialized(root); err != nil {
			return err
		}

		res, name, err := runDiff(root, args)
		if err != nil {
			return err
		}

		path, err := report.WriteDiffArtifact(snap.Dir(root), name, res)
		if err != nil {
			return err
		}

		fmt.Printf("Compared %s against %s\n", res.Base, res.Compare)
		fmt.Println(path)
		return nil
	},
}

// runDiff resolves the requested snapshot(s) and produces the comparison
// plus the artifact name it should be stored under.
func runDiff(root string, args []string) (*diff.Result, string, error) {
	snapsRoot := snap.Dir(root)

	index1, err := parseIndex(args[0])
	if err != nil {
		return nil, "", err
	}
	folder1, err := snap.FindByIndex(snapsRoot, index1)
	if err != nil {
		return nil, "", err
	}
	padded1 := util.PadIndex(index1, config.IndexWidth)

	rules := ignore.Resolve(root, devMode)
	base := filepath.Join(snapsRoot, folder1)

	if len(args) == 2 {
		index2, err := parseIndex(args[1])
		if err != nil {
			return nil, "", err
		}
		folder2, err := snap.FindByIndex(snapsRoot, index2)
		if err != nil {
			return nil, "", err
		}
		res := diff.Compare(base, filepath.Join(snapsRoot, folder2), rules)
		name := fmt.Sprintf("diff_%s_to_%s.json", padded1, util.PadIndex(index2, config.IndexWidth))
		return res, name, nil
	}

	res := diff.Compare(base, root, rules)
	res.Compare = "current"
	return res, fmt.Sprintf("diff_%s_to_current.json", padded1), nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
