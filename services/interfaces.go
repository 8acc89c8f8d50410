package services

import (
	"context"

	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/repository"
)

// ContentStore 内容存储的只读接口，由 repository.ContentRepository 实现
type ContentStore interface {
	// 按创建时间倒序取已发布内容
	ListPublished(ctx context.Context, t models.ContentType, limit int) ([]models.ContentItem, error)

	// 按状态、分类、关键词过滤
	List(ctx context.Context, t models.ContentType, f repository.ListFilter) ([]models.ContentItem, error)

	// 按id查询
	FindByID(ctx context.Context, t models.ContentType, id string) (models.ContentItem, error)
	FindByIDs(ctx context.Context, t models.ContentType, ids []string) ([]models.ContentItem, error)

	// 各状态数量
	CountByStatus(ctx context.Context, t models.ContentType) (map[models.ContentStatus]int, error)
}

// Generator 生成式模型后端：返回符合schema的JSON文本
type Generator interface {
	GenerateJSON(ctx context.Context, prompt Prompt) (string, error)
}

var _ ContentStore = (*repository.ContentRepository)(nil)
