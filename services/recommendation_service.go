package services

import (
	"context"
	"fmt"
	"log/slog"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
	"mrmelo_sanctuary/validation"
)

// RecommendationService 聚合 -> 构建提示词 -> 推理
type RecommendationService struct {
	aggregator *Aggregator
	builder    *PromptBuilder
	inference  *InferenceClient
	store      ContentStore
	log        *slog.Logger
}

// NewRecommendationService 创建推荐服务
func NewRecommendationService(store ContentStore, aggregator *Aggregator, builder *PromptBuilder, inference *InferenceClient) *RecommendationService {
	return &RecommendationService{
		aggregator: aggregator,
		builder:    builder,
		inference:  inference,
		store:      store,
		log:        logger.Component("recommendations"),
	}
}

// Recommend 为请求中的焦点内容生成主题推荐
func (s *RecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationReport, error) {
	if err := validation.Struct(req); err != nil {
		return nil, newValidationError(err)
	}
	return s.recommend(ctx, req.FocalItem())
}

// RecommendItem 以存储中已解析的内容为焦点生成推荐
func (s *RecommendationService) RecommendItem(ctx context.Context, focal models.ContentItem) (*models.RecommendationReport, error) {
	if !focal.Valid() {
		return nil, &ValidationError{Message: "focal content must have an id, a title and a known type"}
	}
	return s.recommend(ctx, focal)
}

// SuggestConnections 只返回连接列表的推荐
func (s *RecommendationService) SuggestConnections(ctx context.Context, source models.ContentItem, targets []models.ContentItem) (*models.ConnectionsReport, error) {
	prompt := s.builder.BuildConnectionsPrompt(source, targets)
	if len(prompt.Items) == 0 {
		s.log.Info("No candidate content for connections", "source_id", source.ID)
		return &models.ConnectionsReport{Connections: []models.ThematicConnection{}}, nil
	}
	return s.inference.InferConnections(ctx, prompt)
}

// SuggestConnectionsFor 按id解析源内容，目标为所有已发布内容
func (s *RecommendationService) SuggestConnectionsFor(ctx context.Context, req models.ConnectionsRequest) (*models.ConnectionsReport, error) {
	if err := validation.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	source, err := s.Lookup(ctx, models.ContentType(req.SourceType), req.SourceID)
	if err != nil {
		return nil, err
	}
	targets, err := s.aggregator.LoadPublishedContent(ctx)
	if err != nil {
		return nil, err
	}
	return s.SuggestConnections(ctx, source, targets)
}

func (s *RecommendationService) recommend(ctx context.Context, focal models.ContentItem) (*models.RecommendationReport, error) {
	pool, err := s.aggregator.LoadPublishedContent(ctx)
	if err != nil {
		return nil, err
	}
	prompt := s.builder.BuildRecommendationPrompt(focal, pool)

	// 没有候选内容时不调用模型
	if len(prompt.Items) == 0 {
		s.log.Info("No candidate content for recommendations", "title", focal.Title)
		return &models.RecommendationReport{
			Recommendations:   []models.ThematicConnection{},
			OverarchingThemes: []string{},
			SuggestedTags:     []string{},
		}, nil
	}

	report, err := s.inference.Infer(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.log.Info("Generated recommendations",
		"content_type", focal.ContentType,
		"title", focal.Title,
		"candidates", len(prompt.Items),
		"recommendations", len(report.Recommendations))
	return report, nil
}

// Lookup 按类型和id查询一条内容，不存在时返回 NotFoundError
func (s *RecommendationService) Lookup(ctx context.Context, t models.ContentType, id string) (models.ContentItem, error) {
	if !t.Valid() {
		return models.ContentItem{}, &ValidationError{Message: fmt.Sprintf("unknown content type %q", t)}
	}
	if id == "" {
		return models.ContentItem{}, &ValidationError{Message: "content id is required", Missing: true}
	}

	item, err := s.store.FindByID(ctx, t, id)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return models.ContentItem{}, &NotFoundError{Resource: string(t), IDs: []string{id}}
		}
		return models.ContentItem{}, fmt.Errorf("load %s %s: %w", t, id, err)
	}
	return item, nil
}
