// Package enhancer polishes an offline draft through an LLM provider.
// The provider reply is expected to be a JSON object with title,
// full_content, and hashtags keys; anything the reply leaves out keeps
// the draft's value, and any provider failure surfaces as an error so
// the caller can fall back to the draft unchanged.
package enhancer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const maxHashtags = 10

// Draft is the offline copy to polish.
type Draft struct {
	Title       string
	FullContent string
	Hashtags    []string
}

// Meta gives the model context about how the draft was produced.
type Meta struct {
	Topic        string
	IndustryID   string
	IndustryName string
	StyleLabel   string
	HotAngle     string
	IdeaTitle    string
	IdeaAngle    string
}

// Result is the polished copy.
type Result struct {
	Title       string
	FullContent string
	Hashtags    []string
	Provider    string
	Model       string
}

// Enhancer runs drafts through a provider client.
type Enhancer struct {
	client   Client
	provider string
}

// New creates an Enhancer over an existing client.
func New(provider string, client Client) *Enhancer {
	return &Enhancer{client: client, provider: provider}
}

// Enhance asks the model to rework the draft. Fields the model fails
// to produce keep the draft's values. A transport or API failure
// returns an error and no result.
func (e *Enhancer) Enhance(ctx context.Context, draft Draft, meta Meta) (Result, error) {
	if strings.TrimSpace(draft.FullContent) == "" {
		return Result{}, fmt.Errorf("empty draft")
	}

	out, err := e.client.Complete(ctx, buildPrompt(draft, meta))
	if err != nil {
		return Result{}, fmt.Errorf("complete: %w", err)
	}

	result := Result{
		Title:       draft.Title,
		FullContent: draft.FullContent,
		Hashtags:    draft.Hashtags,
		Provider:    e.provider,
		Model:       e.client.Model(),
	}

	payload, ok := parsePayload(out)
	if !ok {
		// A reply that is not JSON is still usable copy.
		result.FullContent = strings.TrimSpace(out)
		return result, nil
	}

	if title := strings.TrimSpace(payload.Title); title != "" {
		result.Title = title
	}
	if full := strings.TrimSpace(payload.FullContent); full != "" {
		result.FullContent = full
	}
	if tags := normalizeHashtags(payload.Hashtags); len(tags) > 0 {
		result.Hashtags = tags
	}

	return result, nil
}

type aiPayload struct {
	Title       string   `json:"title"`
	FullContent string   `json:"full_content"`
	Hashtags    []string `json:"hashtags"`
}

// parsePayload finds the JSON object in a model reply, tolerating
// markdown fences and surrounding prose.
func parsePayload(text string) (aiPayload, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return aiPayload{}, false
	}

	if strings.HasPrefix(s, "```") {
		s = strings.Trim(s, "`")
		s = strings.TrimSpace(strings.Replace(s, "json\n", "", 1))
	}

	var payload aiPayload
	if err := json.Unmarshal([]byte(s), &payload); err == nil {
		return payload, true
	}

	l := strings.Index(s, "{")
	r := strings.LastIndex(s, "}")
	if l == -1 || r <= l {
		return aiPayload{}, false
	}
	if err := json.Unmarshal([]byte(s[l:r+1]), &payload); err != nil {
		return aiPayload{}, false
	}
	return payload, true
}

// normalizeHashtags trims, prefixes each tag with a single #, drops
// blanks, and caps the list.
func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		ts := strings.TrimSpace(tag)
		if ts == "" {
			continue
		}
		if !strings.HasPrefix(ts, "#") {
			ts = "#" + strings.TrimLeft(ts, "#")
		}
		out = append(out, ts)
		if len(out) == maxHashtags {
			break
		}
	}
	return out
}
