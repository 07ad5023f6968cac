package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourcePrefix is the file name prefix of a condition table, e.g. "data_20°C.xlsx".
const SourcePrefix = "data_"

// Source is one condition table found on disk.
type Source struct {
	Label string
	Path  string
}

// DiscoverSources lists condition tables in dir named data_<label>.csv or
// data_<label>.xlsx. Results are sorted by label so runs are reproducible.
func DiscoverSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}

	var out []Source
	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		label, ok := labelFromFileName(e.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if prev, dup := seen[label]; dup {
			return nil, fmt.Errorf("condition %q has two tables: %s and %s", label, prev, path)
		}
		seen[label] = path
		out = append(out, Source{Label: label, Path: path})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out, nil
}

func labelFromFileName(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".csv" && ext != ".xlsx" {
		return "", false
	}
	// Skip Excel lock files ("~$data_20°C.xlsx").
	if !strings.HasPrefix(name, SourcePrefix) {
		return "", false
	}
	label := strings.TrimSuffix(strings.TrimPrefix(name, SourcePrefix), filepath.Ext(name))
	if strings.TrimSpace(label) == "" {
		return "", false
	}
	return label, true
}
