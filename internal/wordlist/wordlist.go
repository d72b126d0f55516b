package wordlist

import (
	"encoding/json"
	"log/slog"
	"os"
)

// Category names of the banned-phrase lists. The order here is the order
// the compliance scorer walks the categories in.
const (
	CategoryExtreme  = "extreme_words"
	CategoryMedical  = "medical_claims"
	CategoryFalse    = "false_promises"
	CategoryPlatform = "platform_violations"
)

// Categories lists the four fixed categories in scoring order.
var Categories = []string{
	CategoryExtreme,
	CategoryMedical,
	CategoryFalse,
	CategoryPlatform,
}

// Set holds the categorized banned phrases. Immutable after load.
type Set struct {
	ExtremeWords       []string `json:"extreme_words"`
	MedicalClaims      []string `json:"medical_claims"`
	FalsePromises      []string `json:"false_promises"`
	PlatformViolations []string `json:"platform_violations"`
}

// Category returns the phrase list for a category name.
func (s *Set) Category(name string) []string {
	switch name {
	case CategoryExtreme:
		return s.ExtremeWords
	case CategoryMedical:
		return s.MedicalClaims
	case CategoryFalse:
		return s.FalsePromises
	case CategoryPlatform:
		return s.PlatformViolations
	}
	return nil
}

// Empty reports whether no category has any phrases.
func (s *Set) Empty() bool {
	return len(s.ExtremeWords) == 0 &&
		len(s.MedicalClaims) == 0 &&
		len(s.FalsePromises) == 0 &&
		len(s.PlatformViolations) == 0
}

// Load reads the sensitive-word file. A read or parse failure is not an
// error: it logs a warning and returns an empty set, so a missing file
// only degrades the compliance dimension.
func Load(path string) *Set {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read sensitive words, using empty set", "path", path, "error", err)
		return &Set{}
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		slog.Warn("failed to parse sensitive words, using empty set", "path", path, "error", err)
		return &Set{}
	}

	return &set
}
