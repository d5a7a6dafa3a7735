package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/music-catalog/internal/manifest"
)

// SourceKind identifies how a source is read.
type SourceKind int

const (
	// KindManifest is a local JSON or YAML manifest file.
	KindManifest SourceKind = iota
	// KindURL is a manifest, or an HTML index of manifests, served over HTTP.
	KindURL
	// KindDirectory is a directory tree of tagged audio files.
	KindDirectory
	// KindDatabase is a SQLite snapshot written by the store package.
	KindDatabase
)

// String returns a short name for the kind.
func (k SourceKind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindDirectory:
		return "directory"
	case KindDatabase:
		return "database"
	default:
		return "manifest"
	}
}

// Classify decides how a source should be read.
//
// http:// and https:// sources are URLs. Local paths are classified by
// what they are on disk: directories are scanned, .db/.sqlite files are
// snapshots, and .json/.yaml/.yml files are manifests. Anything else is
// an error.
func Classify(source string) (SourceKind, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return KindURL, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return KindDirectory, nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindDatabase, nil
	}
	if manifest.IsManifestPath(source) {
		return KindManifest, nil
	}
	return 0, fmt.Errorf("unsupported source %s", source)
}

// ParseSources splits newline- or comma-separated input into sources,
// dropping blank entries.
func ParseSources(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == ','
	})

	var sources []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			sources = append(sources, f)
		}
	}
	return sources
}
