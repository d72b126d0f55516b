package industry

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Industry describes one vertical's writing context: search keywords,
// hashtag pool, emoji pool and recommended title formulas.
type Industry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	Description  string   `json:"description"`
	Keywords     []string `json:"keywords"`
	Hashtags     []string `json:"hashtags"`
	Emojis       []string `json:"emojis"`
	Formulas     []string `json:"formulas"`
	SampleTopics []string `json:"sample_topics"`
}

type hintAlias struct {
	hint string
	id   string
}

// hintAliases maps common Chinese hints to industry ids. Order matters:
// the first matching alias wins.
var hintAliases = []hintAlias{
	{"美妆", "beauty"},
	{"护肤", "beauty"},
	{"穿搭", "fashion"},
	{"时尚", "fashion"},
	{"ootd", "fashion"},
	{"美食", "food"},
	{"探店", "food"},
	{"旅行", "travel"},
	{"旅游", "travel"},
	{"攻略", "travel"},
	{"知识", "education"},
	{"学习", "education"},
	{"教育", "education"},
	{"职场", "career"},
	{"工作", "career"},
	{"面试", "career"},
	{"母婴", "parenting"},
	{"育儿", "parenting"},
	{"宝宝", "parenting"},
	{"家居", "home"},
	{"收纳", "home"},
	{"装修", "home"},
	{"健身", "fitness"},
	{"减肥", "fitness"},
	{"减脂", "fitness"},
	{"数码", "tech"},
	{"科技", "tech"},
	{"手机", "tech"},
	{"电脑", "tech"},
}

// Directory is the loaded set of industries. Immutable after load.
type Directory struct {
	industries map[string]Industry
	order      []string
	defaultID  string
}

// LoadDirectory reads every industry JSON file in dir (template.json is
// skipped). Load failures are fail-soft: an unreadable directory or file
// logs a warning and that industry is simply absent.
func LoadDirectory(dir, defaultID string) *Directory {
	d := &Directory{
		industries: make(map[string]Industry),
		defaultID:  defaultID,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("failed to read industries dir, using empty directory", "dir", dir, "error", err)
		return d
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == "template.json" {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read industry file", "path", path, "error", err)
			continue
		}

		var ind Industry
		if err := json.Unmarshal(data, &ind); err != nil {
			slog.Warn("failed to parse industry file", "path", path, "error", err)
			continue
		}
		if ind.ID == "" {
			slog.Warn("industry file missing id, skipping", "path", path)
			continue
		}

		if _, exists := d.industries[ind.ID]; !exists {
			d.order = append(d.order, ind.ID)
		}
		d.industries[ind.ID] = ind
	}

	return d
}

// Get returns an industry by id.
func (d *Directory) Get(id string) (Industry, bool) {
	ind, ok := d.industries[id]
	return ind, ok
}

// Keywords returns the keyword list for an industry. An unknown id
// yields an empty list, never an error.
func (d *Directory) Keywords(id string) []string {
	ind, ok := d.industries[id]
	if !ok {
		return nil
	}
	return ind.Keywords
}

// All returns every industry in stable (filename) order.
func (d *Directory) All() []Industry {
	out := make([]Industry, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.industries[id])
	}
	return out
}

// Len returns the number of loaded industries.
func (d *Directory) Len() int {
	return len(d.industries)
}

// Default returns the configured default industry id, falling back to
// "beauty" when the configured one is not loaded.
func (d *Directory) Default() string {
	if _, ok := d.industries[d.defaultID]; ok {
		return d.defaultID
	}
	return "beauty"
}

// ResolveHint maps a user-supplied hint (an id, an industry name, or a
// common Chinese alias) to an industry id. Returns "" when nothing
// matches.
func (d *Directory) ResolveHint(hint string) string {
	raw := strings.TrimSpace(hint)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if _, ok := d.industries[lower]; ok {
		return lower
	}

	for _, id := range d.order {
		name := d.industries[id].Name
		if name == "" {
			continue
		}
		if strings.Contains(name, raw) || strings.Contains(raw, name) {
			return id
		}
	}

	for _, a := range hintAliases {
		if strings.Contains(lower, a.hint) || strings.Contains(raw, a.hint) {
			if _, ok := d.industries[a.id]; ok {
				return a.id
			}
			return ""
		}
	}

	return ""
}

// AutoDetect picks the industry whose keywords hit the text most often.
// Zero hits fall back to the default industry.
func (d *Directory) AutoDetect(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return d.Default()
	}

	lower := strings.ToLower(t)

	bestID := d.Default()
	bestHits := 0
	for _, id := range d.order {
		hits := 0
		for _, kw := range d.industries[id].Keywords {
			k := strings.ToLower(strings.TrimSpace(kw))
			if k == "" {
				continue
			}
			if strings.Contains(lower, k) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			bestID = id
		}
	}

	return bestID
}
