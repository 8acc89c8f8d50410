package views

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/metrics"
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
)

// Recommender 焦点内容解析与推荐生成
type Recommender interface {
	Lookup(ctx context.Context, t models.ContentType, id string) (models.ContentItem, error)
	RecommendItem(ctx context.Context, focal models.ContentItem) (*models.RecommendationReport, error)
}

// Catalog 首页使用的内容列表
type Catalog interface {
	List(ctx context.Context, contentType, status, category, search string) ([]models.ContentItem, error)
}

// ExplorerOptions 槽位参数
type ExplorerOptions struct {
	RetryInterval time.Duration
	SlotIdle      time.Duration
}

// Explorer 按cookie中的uuid维护展示槽位，驱动推荐的探索流程
type Explorer struct {
	mu      sync.Mutex
	slots   map[string]*Session
	recs    Recommender
	catalog Catalog
	opts    ExplorerOptions
	log     *slog.Logger
}

// NewExplorer 创建探索器
func NewExplorer(recs Recommender, catalog Catalog, opts ExplorerOptions) *Explorer {
	if opts.SlotIdle <= 0 {
		opts.SlotIdle = 30 * time.Minute
	}
	return &Explorer{
		slots:   make(map[string]*Session),
		recs:    recs,
		catalog: catalog,
		opts:    opts,
		log:     logger.Component("explorer"),
	}
}

// Slot 取得槽位，id无效或不存在时创建新槽位并返回新的id
func (e *Explorer) Slot(id string) (*Session, string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if s, ok := e.slots[id]; ok {
			return s, id
		}
	} else {
		id = uuid.NewString()
	}

	s := NewSession(e.opts.RetryInterval)
	e.slots[id] = s
	metrics.ExplorerSlots.Set(float64(len(e.slots)))
	return s, id
}

// Peek 返回已存在的槽位，不存在时返回一个不保存的临时槽位
func (e *Explorer) Peek(id string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.slots[id]; ok {
		return s
	}
	return NewSession(e.opts.RetryInterval)
}

// Prune 删除空闲超过 SlotIdle 的槽位，返回删除数量
func (e *Explorer) Prune(now time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := 0
	for id, s := range e.slots {
		if now.Sub(s.IdleSince()) > e.opts.SlotIdle {
			delete(e.slots, id)
			removed++
		}
	}
	metrics.ExplorerSlots.Set(float64(len(e.slots)))
	if removed > 0 {
		e.log.Info("Pruned idle explorer slots", "removed", removed, "remaining", len(e.slots))
	}
	return removed
}

// Len 当前槽位数量
func (e *Explorer) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.slots)
}

// Index 首页：四种类型的已发布内容，单个类型失败时显示为空
func (e *Explorer) Index(ctx context.Context) IndexPage {
	page := IndexPage{Sections: make([]IndexSection, 0, len(models.AllContentTypes))}
	for _, t := range models.AllContentTypes {
		items, err := e.catalog.List(ctx, string(t), "", "", "")
		if err != nil {
			e.log.Error("Failed to list content for index", "content_type", t, "error", err)
			items = nil
		}
		page.Sections = append(page.Sections, IndexSection{Type: t, Label: SectionLabel(t), Items: items})
	}
	return page
}

// View 解析焦点内容并返回页面数据，不触发推理
func (e *Explorer) View(ctx context.Context, s *Session, t models.ContentType, id string) (ExplorePage, error) {
	focal, err := e.recs.Lookup(ctx, t, id)
	if err != nil {
		return ExplorePage{}, err
	}
	s.Focus(focal)
	return pageFor(focal, s.Snapshot()), nil
}

// Generate 用户显式触发一次推荐生成
func (e *Explorer) Generate(ctx context.Context, s *Session, t models.ContentType, id string) (ExplorePage, error) {
	focal, err := e.recs.Lookup(ctx, t, id)
	if err != nil {
		return ExplorePage{}, err
	}
	s.Focus(focal)

	seq, err := s.Begin()
	if err != nil {
		page := pageFor(focal, s.Snapshot())
		page.Notice = err.Error()
		if errors.Is(err, ErrBusy) {
			page.Busy = true
		}
		return page, nil
	}

	report, err := e.recs.RecommendItem(ctx, focal)
	errMsg := ""
	if err != nil {
		_, _, errMsg = utils.ClassifyError(err)
		e.log.Warn("Recommendation generation failed", "content_type", t, "id", id, "error", err)
	}

	if !s.Complete(seq, report, errMsg) {
		e.log.Info("Discarded stale recommendation result", "content_type", t, "id", id, "seq", seq)
	}
	return pageFor(focal, s.Snapshot()), nil
}

// Dismiss 关闭提示后返回页面数据
func (e *Explorer) Dismiss(ctx context.Context, s *Session, t models.ContentType, id string) (ExplorePage, error) {
	focal, err := e.recs.Lookup(ctx, t, id)
	if err != nil {
		return ExplorePage{}, err
	}
	s.Focus(focal)
	s.Dismiss()
	return pageFor(focal, s.Snapshot()), nil
}

func pageFor(focal models.ContentItem, snap Snapshot) ExplorePage {
	return ExplorePage{
		Focal:  focal,
		State:  snap.State,
		Busy:   snap.State == StateLoading,
		Report: snap.Report,
		Error:  snap.Error,
	}
}
