package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxHistory int) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := NewStore(ctx, dbPath, maxHistory)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "subdir", "test.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath, 0)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)

		var result int
		err = store.QueryRowContext(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		ctx := context.Background()
		store, err := NewStore(ctx, filepath.Join(t.TempDir(), "test.db"), 0)
		require.NoError(t, err)
		defer store.Close()

		var mode string
		err = store.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})
}

func TestMigrate(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	t.Run("creates tables", func(t *testing.T) {
		for _, table := range []string{"copies", "prefs", "schema_migrations"} {
			var name string
			err := store.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			assert.NoError(t, err, "table %s", table)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		assert.NoError(t, store.Migrate(ctx))
	})
}

func TestExtractUpMigration(t *testing.T) {
	content := `-- +migrate Up
CREATE TABLE foo (id TEXT);

-- +migrate Down
DROP TABLE foo;
`
	up := extractUpMigration(content)
	assert.Equal(t, "CREATE TABLE foo (id TEXT);", up)

	assert.Equal(t, "SELECT 1;", extractUpMigration("SELECT 1;"))
}

func TestSaveCopy(t *testing.T) {
	t.Run("saves and reloads", func(t *testing.T) {
		store := newTestStore(t, 0)
		ctx := context.Background()

		id, err := store.SaveCopy(ctx, SaveCopyParams{
			Title:    "✨春季防晒清单",
			Body:     "正文内容",
			Industry: "beauty",
			Hashtags: []string{"#美妆", "#护肤"},
			Formula:  "number_list",
			Score:    82,
		})
		require.NoError(t, err)
		assert.Regexp(t, `^copy_\d{8}_\d{6}$`, id)

		got, err := store.GetCopy(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "✨春季防晒清单", got.Title)
		assert.Equal(t, "正文内容", got.Body)
		assert.Equal(t, "beauty", got.Industry)
		assert.Equal(t, []string{"#美妆", "#护肤"}, got.Hashtags)
		assert.Equal(t, "number_list", got.Formula)
		assert.Equal(t, 82, got.Score)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("ids stay unique within one second", func(t *testing.T) {
		store := newTestStore(t, 0)
		fixed := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return fixed }
		ctx := context.Background()

		first, err := store.SaveCopy(ctx, SaveCopyParams{Title: "a", Body: "a"})
		require.NoError(t, err)
		second, err := store.SaveCopy(ctx, SaveCopyParams{Title: "b", Body: "b"})
		require.NoError(t, err)

		assert.Equal(t, "copy_20260410_120000", first)
		assert.Equal(t, "copy_20260410_120000_2", second)
	})

	t.Run("nil hashtags stored as empty list", func(t *testing.T) {
		store := newTestStore(t, 0)
		ctx := context.Background()

		id, err := store.SaveCopy(ctx, SaveCopyParams{Title: "t", Body: "b"})
		require.NoError(t, err)

		got, err := store.GetCopy(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Hashtags)
	})

	t.Run("prunes beyond the retention cap", func(t *testing.T) {
		store := newTestStore(t, 3)
		base := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
		tick := 0
		store.now = func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}
		ctx := context.Background()

		var last string
		for i := 0; i < 5; i++ {
			id, err := store.SaveCopy(ctx, SaveCopyParams{Title: "t", Body: "b"})
			require.NoError(t, err)
			last = id
		}

		copies, err := store.ListCopies(ctx, 100, "")
		require.NoError(t, err)
		require.Len(t, copies, 3)
		assert.Equal(t, last, copies[0].ID)
	})
}

func TestListCopies(t *testing.T) {
	store := newTestStore(t, 0)
	base := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	ctx := context.Background()

	_, err := store.SaveCopy(ctx, SaveCopyParams{Title: "美妆1", Body: "b", Industry: "beauty"})
	require.NoError(t, err)
	_, err = store.SaveCopy(ctx, SaveCopyParams{Title: "健身1", Body: "b", Industry: "fitness"})
	require.NoError(t, err)
	_, err = store.SaveCopy(ctx, SaveCopyParams{Title: "美妆2", Body: "b", Industry: "beauty"})
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		copies, err := store.ListCopies(ctx, 10, "")
		require.NoError(t, err)
		require.Len(t, copies, 3)
		assert.Equal(t, "美妆2", copies[0].Title)
		assert.Equal(t, "健身1", copies[1].Title)
		assert.Equal(t, "美妆1", copies[2].Title)
	})

	t.Run("filters by industry", func(t *testing.T) {
		copies, err := store.ListCopies(ctx, 10, "beauty")
		require.NoError(t, err)
		require.Len(t, copies, 2)
		assert.Equal(t, "美妆2", copies[0].Title)
	})

	t.Run("respects limit", func(t *testing.T) {
		copies, err := store.ListCopies(ctx, 1, "")
		require.NoError(t, err)
		assert.Len(t, copies, 1)
	})

	t.Run("empty result", func(t *testing.T) {
		copies, err := store.ListCopies(ctx, 10, "travel")
		require.NoError(t, err)
		assert.Empty(t, copies)
	})
}

func TestGetCopyNotFound(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.GetCopy(context.Background(), "copy_19990101_000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCopy(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	id, err := store.SaveCopy(ctx, SaveCopyParams{Title: "t", Body: "b"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCopy(ctx, id))

	_, err = store.GetCopy(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteCopy(ctx, id), ErrNotFound)
}

func TestPrefs(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	t.Run("defaults before any save", func(t *testing.T) {
		prefs, err := store.GetPrefs(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultPrefs(), prefs)
		assert.Equal(t, "beauty", prefs.DefaultIndustry)
		assert.True(t, prefs.AutoSave)
	})

	t.Run("round trip", func(t *testing.T) {
		prefs := DefaultPrefs()
		prefs.DefaultIndustry = "fitness"
		prefs.AutoSave = false
		require.NoError(t, store.UpdatePrefs(ctx, prefs))

		got, err := store.GetPrefs(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefs, got)
	})

	t.Run("update overwrites", func(t *testing.T) {
		prefs := DefaultPrefs()
		prefs.DefaultIndustry = "travel"
		require.NoError(t, store.UpdatePrefs(ctx, prefs))

		got, err := store.GetPrefs(ctx)
		require.NoError(t, err)
		assert.Equal(t, "travel", got.DefaultIndustry)
	})
}
