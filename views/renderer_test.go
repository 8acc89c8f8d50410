package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrmelo_sanctuary/models"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderReport_ConnectionCards(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderReport(&buf, sampleReport()))
	doc := parseHTML(t, buf.String())

	cards := doc.Find(".connection-card")
	require.Equal(t, 2, cards.Length())

	first := cards.First()
	id, _ := first.Attr("data-content-id")
	assert.Equal(t, "r1", id)
	href, _ := first.Find("h4 a").Attr("href")
	assert.Equal(t, "/explore/ranking/r1", href)
	style, _ := first.Find(".strength-bar span").Attr("style")
	assert.Contains(t, style, "width: 88%")
	assert.Equal(t, "hospitality", first.Find(".shared-themes .theme").First().Text())
	action, _ := first.Find("form").Attr("action")
	assert.Equal(t, "/explore/ranking/r1/generate", action)

	assert.Equal(t, "Hospitality as a practice of attention.", doc.Find(".summary").Text())
	assert.Equal(t, 2, doc.Find(".suggested-tags .tag").Length())
	assert.Equal(t, "#hospitality", doc.Find(".suggested-tags .tag").First().Text())
}

func TestRenderReport_Empty(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderReport(&buf, &models.RecommendationReport{}))
	doc := parseHTML(t, buf.String())

	assert.Zero(t, doc.Find(".connection-card").Length())
	assert.Equal(t, 1, doc.Find(".empty").Length())
}

func TestRenderReport_ClampsBar(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rep := &models.RecommendationReport{Recommendations: []models.ThematicConnection{{ContentID: "x", ContentType: "media", ConnectionStrength: 140}}}
	var buf bytes.Buffer
	require.NoError(t, r.RenderReport(&buf, rep))

	style, _ := parseHTML(t, buf.String()).Find(".strength-bar span").Attr("style")
	assert.Contains(t, style, "width: 100%")
}

func TestRenderExplore_ErrorState(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderExplore(&buf, ExplorePage{
		Focal:  hospitality,
		State:  StateError,
		Report: sampleReport(),
		Error:  "failed to generate analysis",
	}))
	doc := parseHTML(t, buf.String())

	assert.Equal(t, "failed to generate analysis", strings.TrimSpace(doc.Find(".error p").Text()))
	assert.Equal(t, 2, doc.Find(".connection-card").Length())
	assert.Equal(t, "On Hospitality", doc.Find(".focal h1").Text())
	_, disabled := doc.Find("button.generate").Attr("disabled")
	assert.False(t, disabled)
}

func TestRenderExplore_Loading(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderExplore(&buf, ExplorePage{Focal: hospitality, State: StateLoading, Busy: true}))
	doc := parseHTML(t, buf.String())

	_, disabled := doc.Find("button.generate").Attr("disabled")
	assert.True(t, disabled)
	state, _ := doc.Find(".controls").Attr("data-state")
	assert.Equal(t, "loading", state)
}

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderIndex(&buf, IndexPage{Sections: []IndexSection{
		{Type: models.ContentWriting, Label: "Writings", Items: []models.ContentItem{hospitality}},
		{Type: models.ContentMedia, Label: "Media"},
	}}))
	doc := parseHTML(t, buf.String())

	assert.Equal(t, 2, doc.Find(".content-section").Length())
	href, _ := doc.Find(".content-link a").Attr("href")
	assert.Equal(t, "/explore/writing/w1", href)
	assert.Equal(t, "Explore the Sanctuary", doc.Find("title").Text())
}
