package results

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSet groups the matrices computed for one (source, state) pair. Total
// is the full sky contribution, Direct the direct-only sky contribution and
// Sun the enhanced sun-disc (analemma) contribution. Direct and Sun are nil
// when the study only produced totals.
type FileSet struct {
	Source string          `yaml:"source" json:"source"`
	State  string          `yaml:"state" json:"state"`
	Total  *FileDescriptor `yaml:"total" json:"total"`
	Direct *FileDescriptor `yaml:"direct,omitempty" json:"direct,omitempty"`
	Sun    *FileDescriptor `yaml:"sun,omitempty" json:"sun,omitempty"`
}

// Manifest is the sidecar index of result files for one analysis grid. It
// replaces filename parsing as the carrier of source/state metadata; folders
// written by the ray-tracing toolchain without a manifest can still be
// loaded through Discover.
type Manifest struct {
	Grid string    `yaml:"grid,omitempty"`
	Sets []FileSet `yaml:"results"`
}

// LoadManifest reads and validates a YAML results manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing results manifest: %w", err)
	}

	dir := filepath.Dir(path)
	for i := range m.Sets {
		set := &m.Sets[i]
		if set.Total == nil && set.Direct == nil {
			return nil, fmt.Errorf("results manifest entry %d (%s..%s) names no files",
				i, set.Source, set.State)
		}
		// manifest paths are relative to the manifest file
		for _, d := range []*FileDescriptor{set.Total, set.Direct, set.Sun} {
			if d != nil && !filepath.IsAbs(d.Path) {
				d.Path = filepath.Join(dir, d.Path)
			}
		}
	}
	return &m, nil
}

// ParseSourceState derives source and state names from the
// `<anything>..<source>..<state>.<ext>` filename convention.
func ParseSourceState(path string) (source, state string, ok bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "..")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[len(parts)-2], parts[len(parts)-1], true
}

// Sibling returns the path of the prefixed sibling file next to path, e.g.
// Sibling("result/wg..clear.ill", "sun") == "result/sun..wg..clear.ill".
func Sibling(path, prefix string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, prefix+".."+base)
}

// Discover scans a result folder and groups files into FileSets using the
// filename convention: any `<source>..<state>.<ext>` file not itself
// prefixed `sun..` or `direct..` is a total matrix, and same-named siblings
// with those prefixes supply the other two terms. Sets are returned sorted
// by file name for deterministic load order.
func Discover(dir string) ([]FileSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning result folder: %w", err)
	}

	var sets []FileSet
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "sun..") || strings.HasPrefix(name, "direct..") {
			continue
		}
		source, state, ok := ParseSourceState(name)
		if !ok {
			continue
		}
		set := FileSet{
			Source: source,
			State:  state,
			Total:  &FileDescriptor{Path: filepath.Join(dir, name), HasHeader: true},
		}
		if p := Sibling(set.Total.Path, "direct"); fileExists(p) {
			set.Direct = &FileDescriptor{Path: p, HasHeader: true}
		}
		if p := Sibling(set.Total.Path, "sun"); fileExists(p) {
			set.Sun = &FileDescriptor{Path: p, HasHeader: true}
		}
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Total.Path < sets[j].Total.Path
	})
	return sets, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
