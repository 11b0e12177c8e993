package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
)

var initYes bool

const ignoreTemplate = `# snapshot configuration file
# This file works WITH your .gitignore, not against it. The snapshot tool
# always uses your .gitignore rules as a base; this file manages the
# exceptions.

#-----------------------------------------------------------------------
## ALWAYS SNAPSHOT (Exceptions to .gitignore)
#-----------------------------------------------------------------------
# Files or folders listed here are included in snapshots even if your
# .gitignore excludes them. Typical candidates: build/ or dist/ output
# you want captured as part of a fully working copy, or .env files.

# build/
# .env


#-----------------------------------------------------------------------
## NEVER SNAPSHOT (Snapshot-specific ignores)
#-----------------------------------------------------------------------
# Files or folders listed here are excluded from snapshots only. Useful
# for large assets or logs you track in git but don't need in every
# checkpoint.

# Version Control
.git/

# Dependencies
node_modules/

# OS & Editor specific
.DS_Store
.vscode/
.idea/

# Logs
*.log

# Environment Files
.env
.env.local
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up snapshot configuration for this project",
	Long: `Write the two-section .snapshotignore template and optionally add the
__snapshots__/ directory to .gitignore. Runs once; an already initialized
project is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		ignorePath := filepath.Join(root, config.IgnoreFileName)
		if fsio.Exists(ignorePath) {
			fmt.Println("Project already initialized.")
			fmt.Printf("To reconfigure, edit %s directly.\n", config.IgnoreFileName)
			return nil
		}

		if err := fsio.WriteFile(ignorePath, []byte(ignoreTemplate), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", config.IgnoreFileName, err)
		}
		fmt.Printf("Created %s with two-section configuration.\n", config.IgnoreFileName)

		addEntry := initYes
		if !initYes {
			addEntry, err = confirm(fmt.Sprintf("Add %s/ to %s? (Y/n): ",
				config.SnapshotsDirName, config.GitignoreName))
			if err != nil {
				return err
			}
		}
		if addEntry {
			if err := amendGitignore(root); err != nil {
				return err
			}
		}

		fmt.Println()
		fmt.Println("Project initialized. Create your first snapshot with:")
		fmt.Println("  snapshot create \"initial version\"")
		return nil
	},
}

// confirm blocks on stdin for a yes/no answer; empty input means yes.
func confirm(prompt string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(prompt)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("Please enter y or n.")
	}
}

// amendGitignore appends the storage directory entry once, creating the
// file if needed. Existing content is never rewritten.
func amendGitignore(root string) error {
	path := filepath.Join(root, config.GitignoreName)
	entry := config.SnapshotsDirName + "/"

	content, err := fsio.ReadFile(path)
	if err == nil && strings.Contains(string(content), entry) {
		fmt.Printf("%s already in %s.\n", entry, config.GitignoreName)
		return nil
	}

	updated := string(content)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += "\n# snapshot: local checkpoint storage\n" + entry + "\n"

	if err := fsio.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("update %s: %w", config.GitignoreName, err)
	}
	fmt.Printf("Added %s to %s.\n", entry, config.GitignoreName)
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "answer yes to all prompts")
	rootCmd.AddCommand(initCmd)
}
