package models

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// ContentListResponse 内容列表响应
type ContentListResponse struct {
	ContentType ContentType   `json:"contentType" example:"writing"`
	Items       []ContentItem `json:"items"`
	Count       int           `json:"count" example:"12"`
}
