package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrmelo_sanctuary/db"
	"mrmelo_sanctuary/models"
)

const testSchema = `
CREATE TABLE writings (id TEXT PRIMARY KEY, title TEXT, slug TEXT, excerpt TEXT, category TEXT, status TEXT, tags TEXT, created_at TEXT);
CREATE TABLE rankings (id TEXT PRIMARY KEY, title TEXT, slug TEXT, description TEXT, category TEXT, status TEXT, tags TEXT, created_at TEXT);
CREATE TABLE roundtable_sessions (id TEXT PRIMARY KEY, title TEXT, slug TEXT, description TEXT, session_format TEXT, status TEXT, tags TEXT, created_at TEXT);
CREATE TABLE media_items (id TEXT PRIMARY KEY, title TEXT, slug TEXT, description TEXT, media_type TEXT, series_name TEXT, status TEXT, tags TEXT, created_at TEXT);

INSERT INTO writings VALUES
  ('w1', 'On Hospitality', 'on-hospitality', 'Guests and hosts', 'essay', 'published', '["hospitality","culture"]', '2025-01-03'),
  ('w2', 'Draft Thoughts', 'draft-thoughts', NULL, 'opinion', 'draft', NULL, '2025-01-04'),
  ('w3', 'The Quiet Table', 'quiet-table', 'Silence at dinner', 'essay', 'published', '[]', '2025-01-05');
INSERT INTO rankings VALUES
  ('r1', 'Best Tea Houses', 'tea-houses', 'Ranked by warmth', 'culture', 'published', '["hospitality"]', '2025-01-01');
INSERT INTO roundtable_sessions VALUES
  ('t1', 'Is Kindness Political?', 'kindness', 'A debate', 'debate', 'published', '["ethics"]', '2025-01-02'),
  ('t2', 'Archived Panel', 'archived', 'Old', 'panel', 'archived', '[]', '2024-12-01');
INSERT INTO media_items VALUES
  ('m1', 'Kitchen Stories', 'kitchen', 'A podcast on cooking', 'podcast', 'Season One', 'published', '["food"," food ",""]', '2025-01-06');
`

func newTestRepo(t *testing.T) *ContentRepository {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(testSchema)
	require.NoError(t, err)
	return NewContentRepository(conn)
}

func TestListPublished(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	items, err := repo.ListPublished(ctx, models.ContentWriting, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// created_at DESC
	assert.Equal(t, "w3", items[0].ID)
	assert.Equal(t, "w1", items[1].ID)
	assert.Equal(t, models.ContentWriting, items[1].ContentType)
	assert.Equal(t, "Guests and hosts", items[1].Description)
	assert.ElementsMatch(t, []string{"hospitality", "culture"}, items[1].Tags)
	assert.NotNil(t, items[0].Tags)
}

func TestListPublished_Limit(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.ListPublished(context.Background(), models.ContentWriting, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "w3", items[0].ID)
}

func TestList_CategoryMapping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	items, err := repo.List(ctx, models.ContentRoundtable, ListFilter{Category: "debate"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "debate", items[0].Category)

	media, err := repo.List(ctx, models.ContentMedia, ListFilter{Search: "season"})
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, "podcast", media[0].Category)
	assert.Equal(t, []string{"food"}, media[0].Tags)
}

func TestList_Search(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.List(context.Background(), models.ContentWriting, ListFilter{Search: "dinner"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "w3", items[0].ID)
}

func TestFindByIDs(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.FindByIDs(context.Background(), models.ContentWriting, []string{"w1", "w2", "missing"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	none, err := repo.FindByIDs(context.Background(), models.ContentRanking, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), models.ContentMedia, "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	item, err := repo.FindByID(context.Background(), models.ContentRanking, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Best Tea Houses", item.Title)
}

func TestCountByStatus(t *testing.T) {
	repo := newTestRepo(t)

	counts, err := repo.CountByStatus(context.Background(), models.ContentRoundtable)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.StatusPublished])
	assert.Equal(t, 1, counts[models.StatusArchived])
}

func TestUnknownContentType(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ListPublished(context.Background(), models.ContentType("gossip"), 10)
	assert.Error(t, err)
}
