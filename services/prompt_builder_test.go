package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrmelo_sanctuary/models"
)

func TestBuildRecommendationPrompt_ExcludesFocal(t *testing.T) {
	focal := item("w1", "On Hospitality", models.ContentWriting, "hospitality", "culture")
	pool := []models.ContentItem{
		focal,
		item("r1", "Best Tea Houses", models.ContentRanking, "hospitality"),
		item("m1", "Kitchen Stories", models.ContentMedia),
	}

	p := NewPromptBuilder(400).BuildRecommendationPrompt(focal, pool)

	require.Len(t, p.Items, 2)
	for _, it := range p.Items {
		assert.NotEqual(t, "w1", it.ID)
	}
	assert.NotContains(t, p.Text, "ID: w1")
	assert.Contains(t, p.Text, "ID: r1")
	assert.Contains(t, p.Text, "Tags: hospitality, culture")
	assert.Contains(t, p.Text, "(2 items)")
	assert.Contains(t, p.Text, "5-7")
}

func TestBuildRecommendationPrompt_NeverIncludesFocalID(t *testing.T) {
	b := NewPromptBuilder(0)
	for n := 0; n < 20; n++ {
		pool := make([]models.ContentItem, 0, n)
		for i := 0; i < n; i++ {
			pool = append(pool, item(fmt.Sprintf("id%d", i), fmt.Sprintf("Title %d", i), models.AllContentTypes[i%4]))
		}
		focalID := fmt.Sprintf("id%d", n/2)
		p := b.BuildRecommendationPrompt(item(focalID, "Focal", models.ContentWriting), pool)

		for _, it := range p.Items {
			assert.NotEqual(t, focalID, it.ID)
		}
		assert.NotContains(t, p.Text, "ID: "+focalID+"\n")
	}
}

func TestExcludeFocal_WithoutID(t *testing.T) {
	focal := models.ContentItem{Title: "on hospitality ", ContentType: models.ContentWriting}
	pool := []models.ContentItem{
		item("w1", "On Hospitality", models.ContentWriting),
		item("r1", "On Hospitality", models.ContentRanking),
	}

	out := ExcludeFocal(focal, pool)
	require.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestBuildRecommendationPrompt_TruncatesDescription(t *testing.T) {
	long := models.ContentItem{
		ID:          "r1",
		Title:       "Best Tea Houses",
		ContentType: models.ContentRanking,
		Description: strings.Repeat("steam ", 50) + "\n\nsecret tail",
	}

	p := NewPromptBuilder(20).BuildRecommendationPrompt(item("w1", "On Hospitality", models.ContentWriting), []models.ContentItem{long})
	assert.NotContains(t, p.Text, "secret tail")
	assert.Contains(t, p.Text, "…")
	assert.Contains(t, p.Text, "Description: N/A")
}

func TestSchemas_RequireAllFields(t *testing.T) {
	rec := recommendationSchema()
	assert.ElementsMatch(t, []string{"recommendations", "overarchingThemes", "suggestedTags", "contentSummary"}, rec.Required)
	assert.ElementsMatch(t,
		[]string{"contentId", "contentTitle", "contentType", "connectionStrength", "connectionReason", "sharedThemes"},
		rec.Properties["recommendations"].Items.Required)

	pat := patternSchema()
	assert.ElementsMatch(t, []string{"commonThemes", "contentClusters", "insights"}, pat.Required)

	conn := connectionsSchema()
	assert.Equal(t, []string{"connections"}, conn.Required)
}

func TestBuildPatternPrompt(t *testing.T) {
	items := []models.ContentItem{
		item("w1", "On Hospitality", models.ContentWriting),
		item("t1", "Is Kindness Political?", models.ContentRoundtable),
	}
	items[1].Category = "debate"

	p := NewPromptBuilder(400).BuildPatternPrompt(items)
	assert.Len(t, p.Items, 2)
	assert.Contains(t, p.Text, "Category: debate")
	assert.Contains(t, p.Text, "3-5 clusters")
	assert.NotNil(t, p.Schema)
}
