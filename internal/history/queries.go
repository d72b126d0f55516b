package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a copy id does not exist.
var ErrNotFound = errors.New("copy not found")

// Copy is one saved generation.
type Copy struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Industry  string    `json:"industry"`
	Hashtags  []string  `json:"hashtags"`
	Formula   string    `json:"formula_used"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveCopyParams carries the fields of a new copy.
type SaveCopyParams struct {
	Title    string
	Body     string
	Industry string
	Hashtags []string
	Formula  string
	Score    int
}

// SaveCopy inserts a copy and prunes the table down to the retention
// cap. The generated id encodes the save time; a suffix is appended
// when two saves land in the same second.
func (s *Store) SaveCopy(ctx context.Context, params SaveCopyParams) (string, error) {
	now := s.now().UTC()
	base := "copy_" + now.Format("20060102_150405")

	hashtags := params.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	tagsJSON, err := json.Marshal(hashtags)
	if err != nil {
		return "", fmt.Errorf("marshal hashtags: %w", err)
	}

	id := base
	for attempt := 2; ; attempt++ {
		var exists int
		err := s.QueryRowContext(ctx, "SELECT COUNT(*) FROM copies WHERE id = ?", id).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("check id: %w", err)
		}
		if exists == 0 {
			break
		}
		id = fmt.Sprintf("%s_%d", base, attempt)
	}

	_, err = s.ExecContext(ctx, `
		INSERT INTO copies (id, title, body, industry, hashtags, formula_used, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, params.Title, params.Body, params.Industry, string(tagsJSON), params.Formula, params.Score, now, now)
	if err != nil {
		return "", fmt.Errorf("insert copy: %w", err)
	}

	if err := s.prune(ctx); err != nil {
		return "", fmt.Errorf("prune history: %w", err)
	}

	return id, nil
}

// prune keeps only the newest maxHistory copies.
func (s *Store) prune(ctx context.Context) error {
	_, err := s.ExecContext(ctx, `
		DELETE FROM copies WHERE id NOT IN (
			SELECT id FROM copies ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, s.maxHistory)
	return err
}

// ListCopies returns the newest copies first. An empty industry means
// no filter.
func (s *Store) ListCopies(ctx context.Context, limit int, industry string) ([]Copy, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, title, body, industry, hashtags, formula_used, score, created_at, updated_at
		FROM copies
	`
	args := []any{}
	if industry != "" {
		query += " WHERE industry = ?"
		args = append(args, industry)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query copies: %w", err)
	}
	defer rows.Close()

	var copies []Copy
	for rows.Next() {
		c, err := scanCopy(rows)
		if err != nil {
			return nil, err
		}
		copies = append(copies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate copies: %w", err)
	}

	return copies, nil
}

// GetCopy returns a single copy by id.
func (s *Store) GetCopy(ctx context.Context, id string) (Copy, error) {
	row := s.QueryRowContext(ctx, `
		SELECT id, title, body, industry, hashtags, formula_used, score, created_at, updated_at
		FROM copies WHERE id = ?
	`, id)

	c, err := scanCopy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Copy{}, ErrNotFound
	}
	if err != nil {
		return Copy{}, err
	}
	return c, nil
}

// DeleteCopy removes a copy by id.
func (s *Store) DeleteCopy(ctx context.Context, id string) error {
	res, err := s.ExecContext(ctx, "DELETE FROM copies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete copy: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCopy(row scanner) (Copy, error) {
	var c Copy
	var tagsJSON string
	err := row.Scan(&c.ID, &c.Title, &c.Body, &c.Industry, &tagsJSON, &c.Formula, &c.Score, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Copy{}, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &c.Hashtags); err != nil {
		return Copy{}, fmt.Errorf("unmarshal hashtags: %w", err)
	}
	return c, nil
}

// Prefs are the persisted user preferences.
type Prefs struct {
	DefaultIndustry string `json:"default_industry"`
	EmojiStyle      string `json:"emoji_style"`
	Language        string `json:"language"`
	AutoSave        bool   `json:"auto_save"`
	MaxHistory      int    `json:"max_history"`
}

// DefaultPrefs returns the preferences used before any are saved.
func DefaultPrefs() Prefs {
	return Prefs{
		DefaultIndustry: "beauty",
		EmojiStyle:      "moderate",
		Language:        "zh",
		AutoSave:        true,
		MaxHistory:      defaultMaxHistory,
	}
}

const prefsKey = "prefs"

// GetPrefs loads the saved preferences, merged over the defaults.
func (s *Store) GetPrefs(ctx context.Context) (Prefs, error) {
	prefs := DefaultPrefs()

	var value string
	err := s.QueryRowContext(ctx, "SELECT value FROM prefs WHERE key = ?", prefsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs, nil
	}
	if err != nil {
		return Prefs{}, fmt.Errorf("query prefs: %w", err)
	}

	if err := json.Unmarshal([]byte(value), &prefs); err != nil {
		return Prefs{}, fmt.Errorf("unmarshal prefs: %w", err)
	}
	return prefs, nil
}

// UpdatePrefs persists the given preferences.
func (s *Store) UpdatePrefs(ctx context.Context, prefs Prefs) error {
	value, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	_, err = s.ExecContext(ctx, `
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, prefsKey, string(value), s.now().UTC())
	if err != nil {
		return fmt.Errorf("upsert prefs: %w", err)
	}
	return nil
}
