package diff

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// unified produces a classic unified patch (---/+++ headers, @@ hunks) for
// one modified file. Binary content yields an empty patch body.
func unified(name string, a, b []byte) string {
	if isBinary(a) || isBinary(b) {
		return ""
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}
	return s
}

// lineDelta is the absolute difference in newline-delimited line counts.
// Deliberately coarse: an in-place edit that keeps the line count reports 0.
func lineDelta(a, b []byte) int {
	d := bytes.Count(b, []byte("\n")) - bytes.Count(a, []byte("\n"))
	if d < 0 {
		d = -d
	}
	return d
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}

// splitLinesKeepNL keeps the trailing newline on each element, which
// produces correct unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
