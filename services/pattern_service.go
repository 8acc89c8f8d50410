package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
	"mrmelo_sanctuary/validation"
)

// PatternService 批量主题聚类
type PatternService struct {
	aggregator *Aggregator
	builder    *PromptBuilder
	inference  *InferenceClient
	log        *slog.Logger
}

// NewPatternService 创建模式分析服务
func NewPatternService(aggregator *Aggregator, builder *PromptBuilder, inference *InferenceClient) *PatternService {
	return &PatternService{
		aggregator: aggregator,
		builder:    builder,
		inference:  inference,
		log:        logger.Component("patterns"),
	}
}

// Analyze 处理 POST /api/pattern-analysis 请求
func (s *PatternService) Analyze(ctx context.Context, req models.PatternAnalysisRequest) (*models.PatternAnalysisReport, error) {
	if len(req.ContentIDs) == 0 {
		return nil, &ValidationError{Message: "invalid content ids provided", Missing: true}
	}
	if err := validation.Struct(req); err != nil {
		return nil, newValidationError(err)
	}
	return s.AnalyzeContentSubset(ctx, req.ContentIDs, req.ContentType)
}

// AnalyzePatterns 对给定内容做全局聚类
func (s *PatternService) AnalyzePatterns(ctx context.Context, items []models.ContentItem) (*models.PatternAnalysisReport, error) {
	valid := filterValid(s.log, items)
	if len(valid) == 0 {
		return nil, &ValidationError{Message: "at least one valid content item is required"}
	}
	if len(valid) > models.MaxPatternItems {
		return nil, &ValidationError{Message: fmt.Sprintf("at most %d content items can be analyzed at once", models.MaxPatternItems)}
	}

	prompt := s.builder.BuildPatternPrompt(valid)
	report, err := s.inference.InferPatterns(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.log.Info("Analyzed content patterns", "items", len(valid), "clusters", len(report.ContentClusters))
	return report, nil
}

// AnalyzeContentSubset 先按id解析内容，再做模式分析；filter 为空或 "all" 时查询全部集合
func (s *PatternService) AnalyzeContentSubset(ctx context.Context, ids []string, filter string) (*models.PatternAnalysisReport, error) {
	ids = utils.DeduplicateSlice(ids)
	if len(ids) == 0 {
		return nil, &ValidationError{Message: "invalid content ids provided", Missing: true}
	}
	if len(ids) > models.MaxPatternItems {
		return nil, &ValidationError{Message: fmt.Sprintf("at most %d content ids can be analyzed at once", models.MaxPatternItems)}
	}

	types, err := typesForFilter(filter)
	if err != nil {
		return nil, err
	}

	items, err := s.aggregator.ResolveIDs(ctx, ids, types)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &NotFoundError{Resource: "content", IDs: ids}
	}

	return s.AnalyzePatterns(ctx, items)
}

func typesForFilter(filter string) ([]models.ContentType, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == "all" {
		return models.AllContentTypes, nil
	}

	t, err := models.ParseContentType(filter)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid content type %q", filter)}
	}
	return []models.ContentType{t}, nil
}
