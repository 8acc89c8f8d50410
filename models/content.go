package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ContentType 内容类型，封闭集合
type ContentType string

const (
	ContentWriting    ContentType = "writing"
	ContentRanking    ContentType = "ranking"
	ContentRoundtable ContentType = "roundtable"
	ContentMedia      ContentType = "media"
)

// AllContentTypes 按聚合顺序排列的全部内容类型
var AllContentTypes = []ContentType{ContentWriting, ContentRanking, ContentRoundtable, ContentMedia}

// Valid 是否为已知的内容类型
func (t ContentType) Valid() bool {
	switch t {
	case ContentWriting, ContentRanking, ContentRoundtable, ContentMedia:
		return true
	}
	return false
}

// Table 内容类型对应的数据表
func (t ContentType) Table() string {
	switch t {
	case ContentWriting:
		return "writings"
	case ContentRanking:
		return "rankings"
	case ContentRoundtable:
		return "roundtable_sessions"
	case ContentMedia:
		return "media_items"
	}
	return ""
}

// ParseContentType 解析内容类型，大小写不敏感
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return t, nil
}

// ContentStatus 发布状态
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// ContentItem 推荐引擎内部使用的统一内容投影
type ContentItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"contentType"`
	Description string      `json:"description,omitempty"`
	Tags        []string    `json:"tags"`
	Category    string      `json:"category,omitempty"`
}

// Valid 进入推理前的必要条件：id、title 非空且类型已知
func (c ContentItem) Valid() bool {
	return strings.TrimSpace(c.ID) != "" && strings.TrimSpace(c.Title) != "" && c.ContentType.Valid()
}

// TagList 以JSON数组字符串存储在数据库中的标签列
type TagList []string

// Scan 实现 sql.Scanner
func (t *TagList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("tags: unsupported type %T", src)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*t = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	*t = out
	return nil
}

// Value 实现 driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Writing 文章
type Writing struct {
	ID       string        `db:"id" json:"id"`
	Title    string        `db:"title" json:"title"`
	Slug     string        `db:"slug" json:"slug"`
	Excerpt  *string       `db:"excerpt" json:"excerpt,omitempty"`
	Category string        `db:"category" json:"category"`
	Status   ContentStatus `db:"status" json:"status"`
	Tags     TagList       `db:"tags" json:"tags"`
}

// Ranking 排行榜
type Ranking struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Slug        string        `db:"slug" json:"slug"`
	Description string        `db:"description" json:"description"`
	Category    string        `db:"category" json:"category"`
	Status      ContentStatus `db:"status" json:"status"`
	Tags        TagList       `db:"tags" json:"tags"`
}

// RoundtableSession 圆桌辩论
type RoundtableSession struct {
	ID            string        `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Slug          string        `db:"slug" json:"slug"`
	Description   string        `db:"description" json:"description"`
	SessionFormat string        `db:"session_format" json:"session_format"`
	Status        ContentStatus `db:"status" json:"status"`
	Tags          TagList       `db:"tags" json:"tags"`
}

// MediaItem 媒体条目
type MediaItem struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Slug        string        `db:"slug" json:"slug"`
	Description string        `db:"description" json:"description"`
	MediaType   string        `db:"media_type" json:"media_type"`
	SeriesName  *string       `db:"series_name" json:"series_name,omitempty"`
	Status      ContentStatus `db:"status" json:"status"`
	Tags        TagList       `db:"tags" json:"tags"`
}

// WritingToContentItem 文章的描述取自摘要
func WritingToContentItem(w Writing) ContentItem {
	desc := ""
	if w.Excerpt != nil {
		desc = *w.Excerpt
	}
	return ContentItem{
		ID:          w.ID,
		Title:       w.Title,
		ContentType: ContentWriting,
		Description: desc,
		Tags:        normalizeTags(w.Tags),
		Category:    w.Category,
	}
}

// RankingToContentItem 排行榜转换
func RankingToContentItem(r Ranking) ContentItem {
	return ContentItem{
		ID:          r.ID,
		Title:       r.Title,
		ContentType: ContentRanking,
		Description: r.Description,
		Tags:        normalizeTags(r.Tags),
		Category:    r.Category,
	}
}

// RoundtableToContentItem 圆桌没有分类字段，用会话形式代替
func RoundtableToContentItem(s RoundtableSession) ContentItem {
	return ContentItem{
		ID:          s.ID,
		Title:       s.Title,
		ContentType: ContentRoundtable,
		Description: s.Description,
		Tags:        normalizeTags(s.Tags),
		Category:    s.SessionFormat,
	}
}

// MediaToContentItem 媒体没有分类字段，用媒体类型代替
func MediaToContentItem(m MediaItem) ContentItem {
	return ContentItem{
		ID:          m.ID,
		Title:       m.Title,
		ContentType: ContentMedia,
		Description: m.Description,
		Tags:        normalizeTags(m.Tags),
		Category:    m.MediaType,
	}
}

// normalizeTags 标签是集合：去空白、去重，保证非nil
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
