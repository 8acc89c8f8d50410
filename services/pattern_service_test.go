package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrmelo_sanctuary/models"
)

func clusterEverything(_ context.Context, p Prompt) (string, error) {
	ids := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ID)
	}
	return mustJSON(map[string]any{
		"commonThemes":    []string{"care"},
		"contentClusters": []map[string]any{{"theme": "Care", "contentIds": ids}},
		"insights":        "Everything is about care.",
	}), nil
}

func newPatternService(store ContentStore, gen Generator) *PatternService {
	return NewPatternService(NewAggregator(store, 50), NewPromptBuilder(400), newTestInference(gen))
}

func TestAnalyzeContentSubset_EmptyIDs(t *testing.T) {
	store := hospitalityStore()
	gen := &fakeGenerator{respond: clusterEverything}
	svc := newPatternService(store, gen)

	for _, ids := range [][]string{nil, {}, {"", "  "}} {
		_, err := svc.AnalyzeContentSubset(context.Background(), ids, "writing")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
	}

	assert.Zero(t, gen.callCount())
	assert.Zero(t, store.callCount())
}

func TestAnalyzeContentSubset_UnknownIDs(t *testing.T) {
	store := hospitalityStore()
	gen := &fakeGenerator{respond: clusterEverything}
	svc := newPatternService(store, gen)

	_, err := svc.AnalyzeContentSubset(context.Background(), []string{"x1", "x2"}, "writing")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"x1", "x2"}, nf.IDs)
	assert.Zero(t, gen.callCount())
}

func TestAnalyzeContentSubset_InvalidFilter(t *testing.T) {
	store := hospitalityStore()
	svc := newPatternService(store, &fakeGenerator{respond: clusterEverything})

	_, err := svc.AnalyzeContentSubset(context.Background(), []string{"w1"}, "gossip")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Zero(t, store.callCount())
}

func TestAnalyzeContentSubset_Filters(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"w1", "r1", "m1"}},
		{"all", []string{"w1", "r1", "m1"}},
		{"writing", []string{"w1"}},
		{"Media", []string{"m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			gen := &fakeGenerator{respond: clusterEverything}
			svc := newPatternService(hospitalityStore(), gen)

			rep, err := svc.AnalyzeContentSubset(context.Background(), []string{"w1", "r1", "m1", "w1"}, tt.filter)
			require.NoError(t, err)
			require.Len(t, rep.ContentClusters, 1)
			assert.ElementsMatch(t, tt.want, rep.ContentClusters[0].ContentIDs)
			assert.Equal(t, 1, gen.callCount())
		})
	}
}

func TestAnalyzePatterns_NoValidItems(t *testing.T) {
	captureLogs(t)
	gen := &fakeGenerator{respond: clusterEverything}
	svc := newPatternService(newFakeStore(), gen)

	_, err := svc.AnalyzePatterns(context.Background(), []models.ContentItem{{ID: "w1"}})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Zero(t, gen.callCount())
}

func TestAnalyze_Request(t *testing.T) {
	gen := &fakeGenerator{respond: clusterEverything}
	svc := newPatternService(hospitalityStore(), gen)

	_, err := svc.Analyze(context.Background(), models.PatternAnalysisRequest{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Missing)

	rep, err := svc.Analyze(context.Background(), models.PatternAnalysisRequest{ContentIDs: []string{"t1", "t2"}, ContentType: "all"})
	require.NoError(t, err)
	assert.Equal(t, "Everything is about care.", rep.Insights)
}

func TestAnalyzeContentSubset_TooManyIDs(t *testing.T) {
	store := hospitalityStore()
	gen := &fakeGenerator{respond: clusterEverything}
	svc := newPatternService(store, gen)

	ids := make([]string, 0, models.MaxPatternItems+1)
	for i := 0; i <= models.MaxPatternItems; i++ {
		ids = append(ids, fmt.Sprintf("x%d", i))
	}
	_, err := svc.AnalyzeContentSubset(context.Background(), ids, "all")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, store.callCount())
	assert.Zero(t, gen.callCount())

	// 重复id去重后不超过上限
	dup := make([]string, 0, models.MaxPatternItems+50)
	for i := 0; i < models.MaxPatternItems+50; i++ {
		dup = append(dup, "w1")
	}
	rep, err := svc.AnalyzeContentSubset(context.Background(), dup, "writing")
	require.NoError(t, err)
	assert.Len(t, rep.ContentClusters, 1)
}

func TestAnalyzePatterns_TooManyItems(t *testing.T) {
	gen := &fakeGenerator{respond: clusterEverything}
	svc := newPatternService(newFakeStore(), gen)

	items := make([]models.ContentItem, 0, models.MaxPatternItems+1)
	for i := 0; i <= models.MaxPatternItems; i++ {
		items = append(items, item(fmt.Sprintf("w%d", i), "Essay", models.ContentWriting))
	}
	_, err := svc.AnalyzePatterns(context.Background(), items)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, gen.callCount())
}
