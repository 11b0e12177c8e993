package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonwyett/jw-ai-snapshot/internal/config"
	"github.com/jonwyett/jw-ai-snapshot/internal/diff"
	"github.com/jonwyett/jw-ai-snapshot/internal/fsio"
	"github.com/jonwyett/jw-ai-snapshot/internal/regress"
	"github.com/jonwyett/jw-ai-snapshot/internal/util"
)

// WriteDiffArtifact saves a diff result as a machine-readable JSON artifact
// under snapshotsRoot and returns the artifact path.
func WriteDiffArtifact(snapshotsRoot, name string, res *diff.Result) (string, error) {
	path := filepath.Join(snapshotsRoot, name)
	if err := util.WriteJSON(path, res); err != nil {
		return "", fmt.Errorf("write diff artifact: %w", err)
	}
	return path, nil
}

// WritePrompt renders the single-comparison analysis prompt and returns the
// artifact path.
func WritePrompt(snapshotsRoot, paddedIndex, label string, res *diff.Result) (string, error) {
	var b strings.Builder

	b.WriteString("# Code Analysis Request: Identify Breaking Changes\n\n")
	fmt.Fprintf(&b, "I have a working snapshot of my code located at `%s/%s_%s/` and my current code has a regression.\n",
		config.SnapshotsDirName, paddedIndex, label)
	b.WriteString("Please analyze the changes below to help identify what may have broken the functionality.\n\n")
	b.WriteString("**Context:** The snapshot represents a known working state. The changes shown below represent\n")
	b.WriteString("all modifications made since that working version.\n\n")

	writeDiffSections(&b, res, "##")

	b.WriteString("---\n\n")
	b.WriteString("**Please analyze these changes and identify:**\n")
	b.WriteString("1. Which changes are most likely to have introduced a regression\n")
	b.WriteString("2. What functionality might be affected\n")
	b.WriteString("3. Specific areas to investigate or test\n")

	path := filepath.Join(snapshotsRoot, fmt.Sprintf("prompt_%s_analysis.md", paddedIndex))
	if err := fsio.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	return path, nil
}

// WriteRegressionPrompt renders the two-part regression analysis prompt and
// returns the artifact path.
func WriteRegressionPrompt(snapshotsRoot string, a *regress.Analysis) (string, error) {
	basePadded := util.PadIndex(a.BaseIndex, config.IndexWidth)

	var b strings.Builder
	b.WriteString("# AI Regression Analysis: Advanced Two-Part Investigation\n\n")
	b.WriteString("I have identified a regression in my code and need your help with a comprehensive analysis.\n")
	b.WriteString("This prompt contains two parts that work together to identify the root cause and formulate a solution.\n\n")
	b.WriteString("**Context:**\n")
	fmt.Fprintf(&b, "- **Last Known Good:** `%s/%s/` (working state)\n", config.SnapshotsDirName, a.BaseFolder)
	fmt.Fprintf(&b, "- **First Breaking Version:** `%s/%s/` (regression introduced)\n", config.SnapshotsDirName, a.NextFolder)
	b.WriteString("- **Current State:** Current working directory (may contain additional changes)\n\n")
	b.WriteString("---\n\n")

	b.WriteString("## SECTION 1: The Immediate Breaking Change\n\n")
	b.WriteString("**What changed between the last working version and the first broken version:**\n\n")
	writeDiffSections(&b, a.Causal, "###")

	b.WriteString("---\n\n")
	b.WriteString("## SECTION 2: The Full Picture (All Changes Since Working Version)\n\n")
	b.WriteString("**What changed between the last working version and the current code:**\n\n")
	writeDiffSections(&b, a.Cumulative, "###")

	b.WriteString("---\n\n")
	b.WriteString("## YOUR TASK:\n\n")
	b.WriteString("**Step 1:** Analyze SECTION 1 to identify the most likely root cause of the regression.\n")
	b.WriteString("**Step 2:** Using SECTION 2, formulate a solution that works with the current codebase.\n\n")
	b.WriteString("**Please provide:**\n")
	b.WriteString("1. **Root Cause Analysis:** What specific change(s) in Section 1 likely caused the regression?\n")
	b.WriteString("2. **Impact Assessment:** What functionality is affected and why?\n")
	b.WriteString("3. **Solution Strategy:** How should this be fixed given the current state in Section 2?\n")
	b.WriteString("4. **Implementation Plan:** Specific code changes or investigation steps needed.\n")

	path := filepath.Join(snapshotsRoot, fmt.Sprintf("regression_analysis_%s.md", basePadded))
	if err := fsio.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write regression prompt: %w", err)
	}
	return path, nil
}

// writeDiffSections renders the removed/added/modified buckets of one diff
// result at the given heading level.
func writeDiffSections(b *strings.Builder, res *diff.Result, heading string) {
	var removed, added, modified []diff.FileEntry
	for _, f := range res.Files {
		switch f.Status {
		case diff.StatusRemoved:
			removed = append(removed, f)
		case diff.StatusAdded:
			added = append(added, f)
		case diff.StatusModified:
			modified = append(modified, f)
		}
	}

	if len(removed) > 0 {
		fmt.Fprintf(b, "%s [REMOVED] Files\n\n", heading)
		for _, f := range removed {
			fmt.Fprintf(b, "- `%s` (was in snapshot, now deleted)\n", f.File)
		}
		b.WriteString("\n")
	}

	if len(added) > 0 {
		fmt.Fprintf(b, "%s [ADDED] Files\n\n", heading)
		for _, f := range added {
			fmt.Fprintf(b, "- `%s` (new file, not in snapshot)\n", f.File)
		}
		b.WriteString("\n")
	}

	if len(modified) > 0 {
		fmt.Fprintf(b, "%s [MODIFIED] Files\n\n", heading)
		for _, f := range modified {
			fmt.Fprintf(b, "%s# `%s`\n\n", heading, f.File)
			if f.LinesChanged != nil {
				fmt.Fprintf(b, "**Lines changed:** %d\n\n", *f.LinesChanged)
			}
			if body := hunksOnly(f.Diff); body != "" {
				b.WriteString("```diff\n")
				b.WriteString(body)
				b.WriteString("```\n")
			}
			b.WriteString("\n")
		}
	}
}

// hunksOnly strips the ---/+++ file headers, keeping @@ hunks and their
// content lines for a compact prompt body.
func hunksOnly(patch string) string {
	if patch == "" {
		return ""
	}
	var out strings.Builder
	in := false
	for _, line := range strings.SplitAfter(patch, "\n") {
		if strings.HasPrefix(line, "@@") {
			in = true
		}
		if in {
			out.WriteString(line)
		}
	}
	return out.String()
}
