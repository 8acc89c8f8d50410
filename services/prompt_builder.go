package services

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
)

// Prompt 一次推理请求：提示词、输出schema以及实际送入提示词的内容
type Prompt struct {
	Text   string
	Schema *genai.Schema
	Items  []models.ContentItem
}

// ids 提示词中出现的内容id集合
func (p Prompt) ids() map[string]models.ContentItem {
	out := make(map[string]models.ContentItem, len(p.Items))
	for _, item := range p.Items {
		out[item.ID] = item
	}
	return out
}

// PromptBuilder 构建推荐、模式分析与连接建议的提示词
type PromptBuilder struct {
	descriptionMaxRunes int
}

// NewPromptBuilder descriptionMaxRunes<=0 表示不截断描述
func NewPromptBuilder(descriptionMaxRunes int) *PromptBuilder {
	return &PromptBuilder{descriptionMaxRunes: descriptionMaxRunes}
}

// BuildRecommendationPrompt 焦点内容永远不会出现在候选列表中
func (b *PromptBuilder) BuildRecommendationPrompt(focal models.ContentItem, pool []models.ContentItem) Prompt {
	candidates := ExcludeFocal(focal, pool)

	var sb strings.Builder
	sb.WriteString("You are a content analyst who identifies thematic connections and patterns across writings, rankings, roundtable debates and media.\n\n")
	sb.WriteString("Current Content:\n")
	b.writeFocal(&sb, focal)

	fmt.Fprintf(&sb, "\nAvailable Content for Recommendations (%d items):\n", len(candidates))
	b.writeItems(&sb, candidates, true)

	sb.WriteString(`
Analyze the current content and identify the 5-7 most thematically connected items from the available content. For each recommendation:
1. Give a connection strength from 0 to 100 based on shared themes and concepts, complementary perspectives and intellectual depth.
2. Explain the connection in one or two sentences.
3. List the specific themes the two items share.

Also provide:
- Overarching themes present across the current content and the recommendations
- Suggested tags that capture the essence of these connections
- A one-paragraph summary of the thematic landscape

Rank by genuine thematic depth rather than surface keyword overlap.
Only use IDs from the list above and never recommend the current content to itself.
`)

	return Prompt{Text: sb.String(), Schema: recommendationSchema(), Items: candidates}
}

// BuildPatternPrompt 对整批内容做主题聚类
func (b *PromptBuilder) BuildPatternPrompt(items []models.ContentItem) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the following content collection (%d items) and identify patterns, themes and clusters:\n", len(items))
	b.writeItems(&sb, items, true)

	sb.WriteString(`
Provide:
1. Common themes across all content (5-8 themes)
2. Content clusters grouped by thematic similarity (3-5 clusters). An item may belong to more than one cluster. Use only IDs from the list above.
3. An insightful paragraph about the collection's intellectual landscape

Focus on deep thematic connections and intellectual patterns.
`)

	return Prompt{Text: sb.String(), Schema: patternSchema(), Items: items}
}

// BuildConnectionsPrompt 为一个源内容挑选最相关的目标内容
func (b *PromptBuilder) BuildConnectionsPrompt(source models.ContentItem, targets []models.ContentItem) Prompt {
	candidates := ExcludeFocal(source, targets)

	var sb strings.Builder
	sb.WriteString("Source Content:\n")
	b.writeFocal(&sb, source)

	sb.WriteString("\nTarget Content Options:\n")
	b.writeItems(&sb, candidates, false)

	sb.WriteString(`
Suggest thematic connections between the source content and the most relevant target items. For each connection:
- Rate the connection strength from 0 to 100
- Explain the reasoning behind the connection
- Identify the shared themes

Return only the most meaningful connections (top 5-7), using IDs from the list above.
`)

	return Prompt{Text: sb.String(), Schema: connectionsSchema(), Items: candidates}
}

func (b *PromptBuilder) writeFocal(sb *strings.Builder, focal models.ContentItem) {
	fmt.Fprintf(sb, "- Type: %s\n", focal.ContentType)
	fmt.Fprintf(sb, "- Title: %s\n", utils.CollapseWhitespace(focal.Title))
	fmt.Fprintf(sb, "- Description: %s\n", orNA(b.description(focal.Description)))
	fmt.Fprintf(sb, "- Tags: %s\n", joinTags(focal.Tags))
	fmt.Fprintf(sb, "- Category: %s\n", orNA(focal.Category))
}

func (b *PromptBuilder) writeItems(sb *strings.Builder, items []models.ContentItem, withCategory bool) {
	for i, item := range items {
		fmt.Fprintf(sb, "\n%d. ID: %s\n", i+1, item.ID)
		fmt.Fprintf(sb, "   Type: %s\n", item.ContentType)
		fmt.Fprintf(sb, "   Title: %s\n", utils.CollapseWhitespace(item.Title))
		fmt.Fprintf(sb, "   Description: %s\n", orNA(b.description(item.Description)))
		fmt.Fprintf(sb, "   Tags: %s\n", joinTags(item.Tags))
		if withCategory {
			fmt.Fprintf(sb, "   Category: %s\n", orNA(item.Category))
		}
	}
}

func (b *PromptBuilder) description(text string) string {
	return utils.TruncateRunes(utils.CollapseWhitespace(text), b.descriptionMaxRunes)
}

// ExcludeFocal 从候选池中移除焦点内容：有id时按id，否则按类型加标题
func ExcludeFocal(focal models.ContentItem, pool []models.ContentItem) []models.ContentItem {
	focalID := strings.TrimSpace(focal.ID)
	focalTitle := strings.ToLower(strings.TrimSpace(focal.Title))

	out := make([]models.ContentItem, 0, len(pool))
	for _, item := range pool {
		if focalID != "" {
			if item.ID == focalID {
				continue
			}
		} else if item.ContentType == focal.ContentType && strings.ToLower(strings.TrimSpace(item.Title)) == focalTitle {
			continue
		}
		out = append(out, item)
	}
	return out
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func joinTags(tags []string) string {
	tags = utils.DeduplicateSlice(tags)
	if len(tags) == 0 {
		return "None"
	}
	return strings.Join(tags, ", ")
}
