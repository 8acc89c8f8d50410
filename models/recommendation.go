package models

// MaxRecommendations 一次推荐最多返回的连接数
const MaxRecommendations = 7

// MaxPatternItems 一次模式分析最多接受的内容数，与四个集合的默认加载上限一致
const MaxPatternItems = 200

// ThematicConnection 焦点内容与一个候选内容之间的主题连接
type ThematicConnection struct {
	ContentID          string   `json:"contentId"`
	ContentTitle       string   `json:"contentTitle"`
	ContentType        string   `json:"contentType"`
	ConnectionStrength int      `json:"connectionStrength"` // 0-100
	ConnectionReason   string   `json:"connectionReason"`
	SharedThemes       []string `json:"sharedThemes"`
}

// RecommendationReport 推荐结果
type RecommendationReport struct {
	Recommendations   []ThematicConnection `json:"recommendations"`
	OverarchingThemes []string             `json:"overarchingThemes"`
	SuggestedTags     []string             `json:"suggestedTags"`
	ContentSummary    string               `json:"contentSummary"`
}

// ContentCluster 按主题聚合的内容，同一内容可以出现在多个聚类中
type ContentCluster struct {
	Theme      string   `json:"theme"`
	ContentIDs []string `json:"contentIds"`
}

// PatternAnalysisReport 批量模式分析结果
type PatternAnalysisReport struct {
	CommonThemes    []string         `json:"commonThemes"`
	ContentClusters []ContentCluster `json:"contentClusters"`
	Insights        string           `json:"insights"`
}

// ConnectionsReport 主题连接建议结果
type ConnectionsReport struct {
	Connections []ThematicConnection `json:"connections"`
}

// CurrentContent 请求中的焦点内容，ID可选
type CurrentContent struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// RecommendationRequest POST /api/recommendations 请求体
type RecommendationRequest struct {
	ContentType    string          `json:"contentType" validate:"required,content_type"`
	CurrentContent *CurrentContent `json:"currentContent" validate:"required"`
}

// FocalItem 把请求转换为焦点内容
func (r RecommendationRequest) FocalItem() ContentItem {
	item := ContentItem{ContentType: ContentType(r.ContentType)}
	if r.CurrentContent != nil {
		item.ID = r.CurrentContent.ID
		item.Title = r.CurrentContent.Title
		item.Description = r.CurrentContent.Description
		item.Tags = normalizeTags(r.CurrentContent.Tags)
		item.Category = r.CurrentContent.Category
	}
	return item
}

// PatternAnalysisRequest POST /api/pattern-analysis 请求体
type PatternAnalysisRequest struct {
	ContentIDs  []string `json:"contentIds" validate:"required,min=1,max=200,dive,required"`
	ContentType string   `json:"contentType,omitempty" validate:"omitempty,content_type_or_all"`
}

// ConnectionsRequest POST /api/connections 请求体
type ConnectionsRequest struct {
	SourceID   string `json:"sourceId" validate:"required"`
	SourceType string `json:"sourceType" validate:"required,content_type"`
}

// ContentStats 每种类型按状态统计的数量
type ContentStats struct {
	Counts map[ContentType]map[ContentStatus]int `json:"counts"`
	Total  int                                   `json:"total"`
}
