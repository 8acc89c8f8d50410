package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/repository"
)

// fakeStore 内存中的内容存储
type fakeStore struct {
	mu    sync.Mutex
	items map[models.ContentType][]models.ContentItem
	fail  map[models.ContentType]error
	calls int
}

func newFakeStore(items ...models.ContentItem) *fakeStore {
	s := &fakeStore{
		items: make(map[models.ContentType][]models.ContentItem),
		fail:  make(map[models.ContentType]error),
	}
	for _, item := range items {
		s.items[item.ContentType] = append(s.items[item.ContentType], item)
	}
	return s
}

func (s *fakeStore) begin(t models.ContentType) ([]models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := s.fail[t]; err != nil {
		return nil, err
	}
	return s.items[t], nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeStore) ListPublished(_ context.Context, t models.ContentType, limit int) ([]models.ContentItem, error) {
	items, err := s.begin(t)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]models.ContentItem(nil), items...), nil
}

func (s *fakeStore) List(ctx context.Context, t models.ContentType, f repository.ListFilter) ([]models.ContentItem, error) {
	return s.ListPublished(ctx, t, f.Limit)
}

func (s *fakeStore) FindByIDs(_ context.Context, t models.ContentType, ids []string) ([]models.ContentItem, error) {
	items, err := s.begin(t)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]models.ContentItem, 0)
	for _, item := range items {
		if want[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeStore) FindByID(ctx context.Context, t models.ContentType, id string) (models.ContentItem, error) {
	items, err := s.FindByIDs(ctx, t, []string{id})
	if err != nil {
		return models.ContentItem{}, err
	}
	if len(items) == 0 {
		return models.ContentItem{}, fmt.Errorf("%s %s: %w", t, id, sql.ErrNoRows)
	}
	return items[0], nil
}

func (s *fakeStore) CountByStatus(_ context.Context, t models.ContentType) (map[models.ContentStatus]int, error) {
	items, err := s.begin(t)
	if err != nil {
		return nil, err
	}
	return map[models.ContentStatus]int{models.StatusPublished: len(items)}, nil
}

// fakeGenerator 记录调用次数并返回预设响应
type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []Prompt
	respond func(ctx context.Context, p Prompt) (string, error)
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, p Prompt) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompts = append(g.prompts, p)
	respond := g.respond
	g.mu.Unlock()

	if respond == nil {
		return "", fmt.Errorf("no response configured")
	}
	return respond(ctx, p)
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func staticResponse(body string) func(context.Context, Prompt) (string, error) {
	return func(context.Context, Prompt) (string, error) { return body, nil }
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func newTestInference(gen Generator) *InferenceClient {
	return NewInferenceClient(gen, InferenceOptions{
		Timeout:         2 * time.Second,
		BreakerFailures: 3,
		BreakerOpen:     time.Minute,
	})
}

func item(id, title string, t models.ContentType, tags ...string) models.ContentItem {
	if tags == nil {
		tags = []string{}
	}
	return models.ContentItem{ID: id, Title: title, ContentType: t, Tags: tags}
}
