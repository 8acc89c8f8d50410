package services

import (
	"context"
	"fmt"

	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/repository"
)

// ContentService 内容浏览与统计
type ContentService struct {
	store ContentStore
	limit int
}

// NewContentService limit 为列表的最大条数
func NewContentService(store ContentStore, limit int) *ContentService {
	return &ContentService{store: store, limit: limit}
}

// List 按类型列出内容，status 为空时只返回已发布内容
func (s *ContentService) List(ctx context.Context, contentType, status, category, search string) ([]models.ContentItem, error) {
	t, err := models.ParseContentType(contentType)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	st := models.ContentStatus(status)
	switch st {
	case "":
		st = models.StatusPublished
	case "any":
		st = ""
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status %q", status)}
	}

	items, err := s.store.List(ctx, t, repository.ListFilter{
		Status:   st,
		Category: category,
		Search:   search,
		Limit:    s.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}
	return items, nil
}

// Stats 四种类型按状态统计
func (s *ContentService) Stats(ctx context.Context) (*models.ContentStats, error) {
	stats := &models.ContentStats{Counts: make(map[models.ContentType]map[models.ContentStatus]int, len(models.AllContentTypes))}
	for _, t := range models.AllContentTypes {
		counts, err := s.store.CountByStatus(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		stats.Counts[t] = counts
		for _, n := range counts {
			stats.Total += n
		}
	}
	return stats, nil
}
