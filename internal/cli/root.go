package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
)

// ErrNotInitialized reports a project without a .snapshotignore file.
var ErrNotInitialized = errors.New("project not initialized")

var (
	verbose bool
	devMode bool
)

var rootCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Lightweight snapshot checkpointing for iterative development",
	Long: `snapshot captures numbered, fully-materialized checkpoints of a project
directory, diffs any two states, restores a prior state and renders
differences into artifacts fit for human review or an LLM prompt.

Snapshots are stored under __snapshots__/ as NNNN_label folders. Exclusions
come from .gitignore plus the two-section .snapshotignore override file
(ALWAYS SNAPSHOT subtracts from the base, NEVER SNAPSHOT adds to it).`,
	SilenceUsage: true,
}

// Execute runs the CLI. Failures surface as a single stderr line and a
// non-zero exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev-mode", false,
		"include the tool's own support files and skip the .gitignore base")
}

func initConfig() {
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	viper.SetConfigName(".snapshot")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")

	viper.SetDefault("hash", config.DefaultHash)
	viper.SetDefault("manifest.max_entries", config.DefaultManifestMax)
	viper.SetDefault("watch.debounce_ms", int(config.DefaultWatchDebounce.Milliseconds()))

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
}

// projectRoot is the directory the command runs in.
func projectRoot() (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return root, nil
}

// ensureInitialized refuses to proceed without the override file, pointing
// the user at the one-time init step instead.
func ensureInitialized(root string) error {
	if !fsio.Exists(filepath.Join(root, config.IgnoreFileName)) {
		return fmt.Errorf("%w: run \"snapshot init\" first", ErrNotInitialized)
	}
	return nil
}

func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid snapshot index %q", arg)
	}
	return n, nil
}
