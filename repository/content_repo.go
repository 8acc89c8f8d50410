package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"mrmelo_sanctuary/models"
)

// ListFilter 列表查询条件，零值表示不过滤
type ListFilter struct {
	Status   models.ContentStatus
	Category string
	Search   string
	Limit    int
}

// tableDef 描述一张内容表的列和行映射
type tableDef struct {
	columns     []string
	categoryCol string
	searchCols  []string
	scan        func(rows *sql.Rows) (models.ContentItem, error)
}

var tables = map[models.ContentType]tableDef{
	models.ContentWriting: {
		columns:     []string{"id", "title", "slug", "excerpt", "category", "status", "tags"},
		categoryCol: "category",
		searchCols:  []string{"title", "excerpt"},
		scan: func(rows *sql.Rows) (models.ContentItem, error) {
			var w models.Writing
			if err := rows.Scan(&w.ID, &w.Title, &w.Slug, &w.Excerpt, &w.Category, &w.Status, &w.Tags); err != nil {
				return models.ContentItem{}, err
			}
			return models.WritingToContentItem(w), nil
		},
	},
	models.ContentRanking: {
		columns:     []string{"id", "title", "slug", "description", "category", "status", "tags"},
		categoryCol: "category",
		searchCols:  []string{"title", "description"},
		scan: func(rows *sql.Rows) (models.ContentItem, error) {
			var r models.Ranking
			if err := rows.Scan(&r.ID, &r.Title, &r.Slug, &r.Description, &r.Category, &r.Status, &r.Tags); err != nil {
				return models.ContentItem{}, err
			}
			return models.RankingToContentItem(r), nil
		},
	},
	models.ContentRoundtable: {
		columns:     []string{"id", "title", "slug", "description", "session_format", "status", "tags"},
		categoryCol: "session_format",
		searchCols:  []string{"title", "description"},
		scan: func(rows *sql.Rows) (models.ContentItem, error) {
			var s models.RoundtableSession
			if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.SessionFormat, &s.Status, &s.Tags); err != nil {
				return models.ContentItem{}, err
			}
			return models.RoundtableToContentItem(s), nil
		},
	},
	models.ContentMedia: {
		columns:     []string{"id", "title", "slug", "description", "media_type", "series_name", "status", "tags"},
		categoryCol: "media_type",
		searchCols:  []string{"title", "description", "series_name"},
		scan: func(rows *sql.Rows) (models.ContentItem, error) {
			var m models.MediaItem
			if err := rows.Scan(&m.ID, &m.Title, &m.Slug, &m.Description, &m.MediaType, &m.SeriesName, &m.Status, &m.Tags); err != nil {
				return models.ContentItem{}, err
			}
			return models.MediaToContentItem(m), nil
		},
	},
}

// ContentRepository 四张内容表的只读访问
type ContentRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewContentRepository mysql 与 sqlite 都使用 ? 占位符
func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// ListPublished 按创建时间倒序取已发布内容
func (r *ContentRepository) ListPublished(ctx context.Context, t models.ContentType, limit int) ([]models.ContentItem, error) {
	return r.List(ctx, t, ListFilter{Status: models.StatusPublished, Limit: limit})
}

// List 按状态、分类、关键词过滤
func (r *ContentRepository) List(ctx context.Context, t models.ContentType, f ListFilter) ([]models.ContentItem, error) {
	def, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	q := r.sb.Select(def.columns...).From(t.Table()).OrderBy("created_at DESC")
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.Category != "" {
		q = q.Where(sq.Eq{def.categoryCol: f.Category})
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		or := sq.Or{}
		for _, col := range def.searchCols {
			or = append(or, sq.Like{col: "%" + search + "%"})
		}
		q = q.Where(or)
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	return r.query(ctx, t, def, q)
}

// FindByIDs 按id列表查询，未知id被忽略
func (r *ContentRepository) FindByIDs(ctx context.Context, t models.ContentType, ids []string) ([]models.ContentItem, error) {
	def, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.ContentItem{}, nil
	}

	q := r.sb.Select(def.columns...).From(t.Table()).Where(sq.Eq{"id": ids}).OrderBy("created_at DESC")
	return r.query(ctx, t, def, q)
}

// FindByID 单条查询，不存在时返回 sql.ErrNoRows
func (r *ContentRepository) FindByID(ctx context.Context, t models.ContentType, id string) (models.ContentItem, error) {
	items, err := r.FindByIDs(ctx, t, []string{id})
	if err != nil {
		return models.ContentItem{}, err
	}
	if len(items) == 0 {
		return models.ContentItem{}, fmt.Errorf("%s %s: %w", t, id, sql.ErrNoRows)
	}
	return items[0], nil
}

// CountByStatus 统计一张表各状态的数量
func (r *ContentRepository) CountByStatus(ctx context.Context, t models.ContentType) (map[models.ContentStatus]int, error) {
	if _, err := tableFor(t); err != nil {
		return nil, err
	}

	query, args, err := r.sb.Select("status", "COUNT(*)").From(t.Table()).GroupBy("status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count %s: %w", t.Table(), err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", t.Table(), err)
	}
	defer rows.Close()

	counts := make(map[models.ContentStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count %s: %w", t.Table(), err)
		}
		counts[models.ContentStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration %s: %w", t.Table(), err)
	}
	return counts, nil
}

func (r *ContentRepository) query(ctx context.Context, t models.ContentType, def tableDef, q sq.SelectBuilder) ([]models.ContentItem, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query %s: %w", t.Table(), err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.Table(), err)
	}
	defer rows.Close()

	items := make([]models.ContentItem, 0)
	for rows.Next() {
		item, err := def.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Table(), err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration %s: %w", t.Table(), err)
	}
	return items, nil
}

func tableFor(t models.ContentType) (tableDef, error) {
	def, ok := tables[t]
	if !ok {
		return tableDef{}, fmt.Errorf("unknown content type %q", t)
	}
	return def, nil
}
