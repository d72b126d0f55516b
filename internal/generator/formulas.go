package generator

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Formula is a reusable title pattern. The template contains
// {placeholder} slots filled in at render time.
type Formula struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Template string   `json:"template"`
	Example  string   `json:"example,omitempty"`
	BestFor  []string `json:"best_for,omitempty"`
}

// LoadFormulas reads every *.json file in dir except template.json.
// Unreadable files are skipped with a warning so a broken formula
// never takes generation down.
func LoadFormulas(dir string) map[string]Formula {
	formulas := make(map[string]Formula)

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("failed to read formulas directory", "dir", dir, "error", err)
		return formulas
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == "template.json" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read formula file", "path", path, "error", err)
			continue
		}

		var formula Formula
		if err := json.Unmarshal(data, &formula); err != nil {
			slog.Warn("failed to parse formula file", "path", path, "error", err)
			continue
		}
		if formula.ID == "" {
			slog.Warn("formula file missing id, skipping", "path", path)
			continue
		}
		formulas[formula.ID] = formula
	}

	return formulas
}
