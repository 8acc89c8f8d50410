package services

import "google.golang.org/genai"

func stringArraySchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func connectionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"contentId": {
				Type:        genai.TypeString,
				Description: "ID of the candidate content item, copied exactly from the list",
			},
			"contentTitle": {Type: genai.TypeString},
			"contentType": {
				Type: genai.TypeString,
				Enum: []string{"writing", "ranking", "roundtable", "media"},
			},
			"connectionStrength": {
				Type:        genai.TypeInteger,
				Description: "Strength of the thematic connection from 0 to 100",
				Minimum:     genai.Ptr[float64](0),
				Maximum:     genai.Ptr[float64](100),
			},
			"connectionReason": {
				Type:        genai.TypeString,
				Description: "One or two sentences explaining the connection",
			},
			"sharedThemes": stringArraySchema("Short theme labels shared with the focal content"),
		},
		Required: []string{"contentId", "contentTitle", "contentType", "connectionStrength", "connectionReason", "sharedThemes"},
	}
}

// recommendationSchema RecommendationReport 的输出约束
func recommendationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type:     genai.TypeArray,
				Items:    connectionSchema(),
				MaxItems: genai.Ptr[int64](7),
			},
			"overarchingThemes": stringArraySchema("Themes spanning the focal content and its recommendations"),
			"suggestedTags":     stringArraySchema("Tag candidates for the focal content"),
			"contentSummary": {
				Type:        genai.TypeString,
				Description: "One paragraph describing the thematic landscape",
			},
		},
		Required: []string{"recommendations", "overarchingThemes", "suggestedTags", "contentSummary"},
	}
}

// patternSchema PatternAnalysisReport 的输出约束
func patternSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"commonThemes": stringArraySchema("Themes common across the collection"),
			"contentClusters": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"theme":      {Type: genai.TypeString},
						"contentIds": stringArraySchema("IDs of the items in this cluster; an item may belong to several clusters"),
					},
					Required: []string{"theme", "contentIds"},
				},
			},
			"insights": {
				Type:        genai.TypeString,
				Description: "One paragraph on the collection's intellectual landscape",
			},
		},
		Required: []string{"commonThemes", "contentClusters", "insights"},
	}
}

// connectionsSchema ConnectionsReport 的输出约束
func connectionsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"connections": {
				Type:     genai.TypeArray,
				Items:    connectionSchema(),
				MaxItems: genai.Ptr[int64](7),
			},
		},
		Required: []string{"connections"},
	}
}
