package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/ignore"
	"github.com/jonwyett/jw-ai-snapshot/internal/regress"
	"github.com/jonwyett/jw-ai-snapshot/internal/report"
	"github.com/jonwyett/jw-ai-snapshot/internal/snap"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

var regressionCmd = &cobra.Command{
	Use:     "regression <index>",
	Aliases: []string{"analyze-regression"},
	Short:   "Run a two-part regression analysis against a known-good snapshot",
	Long: `Treat <index> as the last known good state and compare it twice: against
its immediate successor (the causal diff: what broke it) and against the
current tree (the cumulative diff: everything since). Both diffs are saved
as JSON artifacts next to a two-part analysis prompt, whose path is the
last line of output.

The analysis requires a snapshot numbered <index>+1 to exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if err := ensureInitialized(root); err != nil {
			return err
		}

		baseIndex, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		rules := ignore.Resolve(root, devMode)
		a, err := regress.Analyze(root, baseIndex, rules)
		if err != nil {
			return err
		}

		fmt.Printf("Base (known good): %s\n", a.BaseFolder)
		fmt.Printf("Next (first broken): %s\n", a.NextFolder)

		snapsRoot := snap.Dir(root)
		basePadded := util.PadIndex(a.BaseIndex, config.IndexWidth)
		nextPadded := util.PadIndex(a.NextIndex, config.IndexWidth)

		causalPath, err := report.WriteDiffArtifact(snapsRoot,
			fmt.Sprintf("regression_causal_%s_to_%s.json", basePadded, nextPadded), a.Causal)
		if err != nil {
			return err
		}
		cumulativePath, err := report.WriteDiffArtifact(snapsRoot,
			fmt.Sprintf("regression_cumulative_%s_to_current.json", basePadded), a.Cumulative)
		if err != nil {
			return err
		}

		promptPath, err := report.WriteRegressionPrompt(snapsRoot, a)
		if err != nil {
			return err
		}

		fmt.Printf("Causal diff saved to %s\n", causalPath)
		fmt.Printf("Cumulative diff saved to %s\n", cumulativePath)
		fmt.Println(promptPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regressionCmd)
}
