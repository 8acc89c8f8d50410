package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrmelo_sanctuary/models"
)

var (
	hospitality = models.ContentItem{ID: "w1", Title: "On Hospitality", ContentType: models.ContentWriting, Tags: []string{"hospitality"}}
	teaHouses   = models.ContentItem{ID: "r1", Title: "Best Tea Houses", ContentType: models.ContentRanking, Tags: []string{"hospitality"}}
)

func sampleReport() *models.RecommendationReport {
	return &models.RecommendationReport{
		Recommendations: []models.ThematicConnection{
			{ContentID: "r1", ContentTitle: "Best Tea Houses", ContentType: "ranking", ConnectionStrength: 88, ConnectionReason: "Both treat welcome as a craft.", SharedThemes: []string{"hospitality"}},
			{ContentID: "m1", ContentTitle: "Open Door Kitchen", ContentType: "media", ConnectionStrength: 73, ConnectionReason: "Cooking for strangers.", SharedThemes: []string{"hospitality", "food"}},
		},
		OverarchingThemes: []string{"welcome"},
		SuggestedTags:     []string{"hospitality", "ritual"},
		ContentSummary:    "Hospitality as a practice of attention.",
	}
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession(0)
	s.Focus(hospitality)
	assert.Equal(t, StateIdle, s.Snapshot().State)

	seq, err := s.Begin()
	require.NoError(t, err)
	assert.Equal(t, StateLoading, s.Snapshot().State)

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	require.True(t, s.Complete(seq, sampleReport(), ""))
	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Len(t, snap.Report.Recommendations, 2)

	s.Dismiss()
	assert.Equal(t, StateIdle, s.Snapshot().State)
	assert.NotNil(t, s.Snapshot().Report)
}

func TestSession_ErrorKeepsPreviousReport(t *testing.T) {
	s := NewSession(0)
	s.Focus(hospitality)

	seq, _ := s.Begin()
	s.Complete(seq, sampleReport(), "")

	seq, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Complete(seq, nil, "failed to generate analysis"))

	snap := s.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "failed to generate analysis", snap.Error)
	require.NotNil(t, snap.Report)
	assert.Equal(t, "Hospitality as a practice of attention.", snap.Report.ContentSummary)

	s.Dismiss()
	snap = s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Error)
	assert.NotNil(t, snap.Report)
}

func TestSession_DiscardsStaleResults(t *testing.T) {
	s := NewSession(0)
	s.Focus(hospitality)

	stale, err := s.Begin()
	require.NoError(t, err)

	// 用户在请求完成前切换到了另一条内容
	s.Focus(teaHouses)
	assert.Equal(t, StateIdle, s.Snapshot().State)

	assert.False(t, s.Complete(stale, sampleReport(), ""))
	snap := s.Snapshot()
	assert.Nil(t, snap.Report)
	assert.Equal(t, "r1", snap.Focal.ID)

	fresh, err := s.Begin()
	require.NoError(t, err)
	assert.Greater(t, fresh, stale)
	assert.True(t, s.Complete(fresh, sampleReport(), ""))
}

func TestSession_FocusSameItemKeepsState(t *testing.T) {
	s := NewSession(0)
	s.Focus(hospitality)
	seq, _ := s.Begin()

	s.Focus(hospitality)
	assert.Equal(t, StateLoading, s.Snapshot().State)
	assert.True(t, s.Complete(seq, sampleReport(), ""))
}

func TestSession_RetryRateLimited(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession(5 * time.Second)
	s.now = func() time.Time { return now }
	s.Focus(hospitality)

	seq, err := s.Begin()
	require.NoError(t, err)
	s.Complete(seq, nil, "analysis timed out")

	now = now.Add(time.Second)
	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrTooSoon)
	assert.Equal(t, StateError, s.Snapshot().State)

	now = now.Add(5 * time.Second)
	_, err = s.Begin()
	assert.NoError(t, err)
}

func TestSession_PivotNotRateLimited(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession(5 * time.Second)
	s.now = func() time.Time { return now }

	s.Focus(hospitality)
	seq, err := s.Begin()
	require.NoError(t, err)
	require.True(t, s.Complete(seq, sampleReport(), ""))

	// 切换到新的焦点内容立即生成
	now = now.Add(time.Second)
	s.Focus(teaHouses)
	seq, err = s.Begin()
	require.NoError(t, err)
	require.True(t, s.Complete(seq, sampleReport(), ""))

	// 对同一焦点的重试仍然受限
	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrTooSoon)
}
