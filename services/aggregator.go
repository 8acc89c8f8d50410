package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/metrics"
	"mrmelo_sanctuary/models"
)

// Aggregator 从四个内容集合并发加载内容并统一为 ContentItem
type Aggregator struct {
	store ContentStore
	limit int
	log   *slog.Logger
}

// NewAggregator 创建聚合器，limit为每种类型的最大条数
func NewAggregator(store ContentStore, limit int) *Aggregator {
	if limit <= 0 {
		limit = 50
	}
	return &Aggregator{
		store: store,
		limit: limit,
		log:   logger.Component("aggregator"),
	}
}

// LoadPublishedContent 加载所有已发布内容，单个集合失败时返回其余集合的结果，全部失败时返回错误
func (a *Aggregator) LoadPublishedContent(ctx context.Context) ([]models.ContentItem, error) {
	items, err := a.fanOut(ctx, models.AllContentTypes, func(ctx context.Context, t models.ContentType) ([]models.ContentItem, error) {
		return a.store.ListPublished(ctx, t, a.limit)
	})
	if err != nil {
		if err.Complete(len(models.AllContentTypes)) {
			return nil, fmt.Errorf("load published content: %w", err)
		}
		a.log.Warn("Serving partial content set", "error", err, "items", len(items))
	}
	return items, nil
}

// ResolveIDs 在指定集合中按id查询，全部集合失败时返回错误
func (a *Aggregator) ResolveIDs(ctx context.Context, ids []string, types []models.ContentType) ([]models.ContentItem, error) {
	items, err := a.fanOut(ctx, types, func(ctx context.Context, t models.ContentType) ([]models.ContentItem, error) {
		return a.store.FindByIDs(ctx, t, ids)
	})
	if err != nil {
		if err.Complete(len(types)) {
			return nil, fmt.Errorf("resolve content ids: %w", err)
		}
		a.log.Warn("Resolved ids from a partial content set", "error", err, "items", len(items))
	}
	return items, nil
}

// fanOut 每个集合一个goroutine，结果写入各自的槽位，按类型顺序拼接
func (a *Aggregator) fanOut(
	ctx context.Context,
	types []models.ContentType,
	fetch func(ctx context.Context, t models.ContentType) ([]models.ContentItem, error),
) ([]models.ContentItem, *AggregationError) {
	results := make([][]models.ContentItem, len(types))

	var (
		mu     sync.Mutex
		failed = make(map[models.ContentType]error)
		g      errgroup.Group
	)

	for i, t := range types {
		g.Go(func() error {
			items, err := fetch(ctx, t)
			if err != nil {
				a.log.Error("Failed to load content collection", "collection", t.Table(), "error", err)
				metrics.AggregationFailures.WithLabelValues(t.Table()).Inc()
				mu.Lock()
				failed[t] = err
				mu.Unlock()
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.ContentItem, 0)
	for _, items := range results {
		out = append(out, filterValid(a.log, items)...)
	}

	if len(failed) > 0 {
		return out, &AggregationError{Failed: failed}
	}
	return out, nil
}

// filterValid 丢弃缺少id、title或类型未知的内容
func filterValid(log *slog.Logger, items []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if !item.Valid() {
			log.Warn("Dropping invalid content item", "id", item.ID, "title", item.Title, "content_type", item.ContentType)
			continue
		}
		out = append(out, item)
	}
	return out
}
