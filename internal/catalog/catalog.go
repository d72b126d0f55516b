package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Default validity bounds used when a topic omits its window.
const (
	defaultStartDate = "2000-01-01"
	defaultEndDate   = "2099-12-31"

	dateLayout = "2006-01-02"
)

// Topic is a catalogued hot topic with a validity window and the
// industries it applies to.
type Topic struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Keywords           []string `json:"keywords"`
	Heat               int      `json:"heat"`
	SuitableIndustries []string `json:"suitable_industries"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Angles             []string `json:"angles"`
}

// ActiveAt reports whether the topic's validity window covers now.
// Missing bounds fall back to the wide defaults; an unparsable bound
// fails open and the topic counts as active.
func (t *Topic) ActiveAt(now time.Time) bool {
	startStr := strings.TrimSpace(t.StartDate)
	if startStr == "" {
		startStr = defaultStartDate
	}
	endStr := strings.TrimSpace(t.EndDate)
	if endStr == "" {
		endStr = defaultEndDate
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return true
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return true
	}

	return !now.Before(start) && !now.After(end)
}

// Category groups topics under a named section of the catalog.
type Category struct {
	ID     string
	Name   string
	Icon   string
	Topics []Topic
}

// Catalog is the loaded hot-topic catalog. Category order matches the
// source document; that order is the tie-break order for ranking.
// Immutable after load.
type Catalog struct {
	Categories []Category
}

// CategorySummary is a projection without the topic payloads.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Summaries returns all categories without their topics, in catalog order.
func (c *Catalog) Summaries() []CategorySummary {
	out := make([]CategorySummary, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, CategorySummary{ID: cat.ID, Name: cat.Name, Icon: cat.Icon})
	}
	return out
}

// TopicsByCategory returns the topics of one category, or nil if the
// category does not exist.
func (c *Catalog) TopicsByCategory(categoryID string) []Topic {
	for _, cat := range c.Categories {
		if cat.ID == categoryID {
			return cat.Topics
		}
	}
	return nil
}

// Angles returns the narrative angles of a topic, or an empty list if
// the topic is unknown.
func (c *Catalog) Angles(topicID string) []string {
	for _, cat := range c.Categories {
		for _, t := range cat.Topics {
			if t.ID == topicID {
				return t.Angles
			}
		}
	}
	return []string{}
}

// TopicCount returns the total number of topics across all categories.
func (c *Catalog) TopicCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Topics)
	}
	return n
}

// Load reads the hot-topic catalog. Same fail-soft contract as the
// sensitive-word store: any read or parse failure logs a warning and
// yields an empty catalog.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read hot topics, using empty catalog", "path", path, "error", err)
		return &Catalog{}
	}

	cat, err := Parse(data)
	if err != nil {
		slog.Warn("failed to parse hot topics, using empty catalog", "path", path, "error", err)
		return &Catalog{}
	}

	return cat
}

// Parse decodes a catalog document. The "categories" object is walked
// with a token decoder so the document's key order is preserved; a plain
// map decode would shuffle it and make tie-breaks non-deterministic.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("catalog root: %w", err)
	}

	cat := &Catalog{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("catalog key: %w", err)
		}

		if key != "categories" {
			// Skip unknown top-level fields
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip %q: %w", key, err)
			}
			continue
		}

		categories, err := parseCategories(dec)
		if err != nil {
			return nil, err
		}
		cat.Categories = categories
	}

	return cat, nil
}

func parseCategories(dec *json.Decoder) ([]Category, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	var categories []Category
	for dec.More() {
		id, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("category id: %w", err)
		}

		var body struct {
			Name   string  `json:"name"`
			Icon   string  `json:"icon"`
			Topics []Topic `json:"topics"`
		}
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("category %q: %w", id, err)
		}

		categories = append(categories, Category{
			ID:     id,
			Name:   body.Name,
			Icon:   body.Icon,
			Topics: body.Topics,
		})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("categories end: %w", err)
	}

	return categories, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}
