package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// SnapshotsDirName is the storage directory under the project root.
	// It is excluded from every walk unconditionally.
	SnapshotsDirName = "__snapshots__"

	IgnoreFileName = ".snapshotignore"
	GitignoreName  = ".gitignore"
	LogFileName    = "snapshot.log"

	ConfigFileName = ".snapshot.toml"

	// IndexWidth is the zero-padded width of snapshot sequence numbers.
	IndexWidth = 4
)

const (
	DefaultHash          = "xxh3" // "xxh3" | "sha256"
	DefaultManifestMax   = 10
	DefaultWatchDebounce = 2 * time.Second
)

// ProtectedDevFiles are the tool's own support files. In dev mode they are
// never excluded, so the tool can snapshot itself during development.
var ProtectedDevFiles = []string{IgnoreFileName, "go.mod", "go.sum"}

// SelectedHash returns the configured hash algorithm.
// Falls back to xxh3 if not specified or config is missing.
func SelectedHash() string {
	h := viper.GetString("hash")
	if h == "" {
		return DefaultHash
	}
	return h
}

// ManifestMaxEntries returns how many files a manifest bucket lists before
// it is truncated to a summary line.
func ManifestMaxEntries() int {
	n := viper.GetInt("manifest.max_entries")
	if n <= 0 {
		return DefaultManifestMax
	}
	return n
}

// WatchDebounce returns the settle interval for watch mode.
func WatchDebounce() time.Duration {
	ms := viper.GetInt("watch.debounce_ms")
	if ms <= 0 {
		return DefaultWatchDebounce
	}
	return time.Duration(ms) * time.Millisecond
}
