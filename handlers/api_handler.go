package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/services"
	"mrmelo_sanctuary/utils"
)

// RecommendationsHandler godoc
// @Summary 为焦点内容生成主题推荐
// @Description 聚合所有已发布内容，调用生成式模型返回5-7条主题连接
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body models.RecommendationRequest true "焦点内容"
// @Success 200 {object} models.RecommendationReport "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Failure 429 {object} models.ErrorResponse "请求过于频繁"
// @Failure 502 {object} models.ErrorResponse "推理失败"
// @Failure 503 {object} models.ErrorResponse "内容存储或推理服务不可用"
// @Failure 504 {object} models.ErrorResponse "推理超时"
// @Router /api/recommendations [post]
func RecommendationsHandler(w http.ResponseWriter, r *http.Request, svc *services.RecommendationService) {
	var req models.RecommendationRequest
	if err := utils.DecodeJSONBody(w, r, &req); err != nil {
		utils.WriteCustomErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, "invalid request body")
		return
	}

	report, err := svc.Recommend(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, report)
}

// PatternAnalysisHandler godoc
// @Summary 对一组内容做主题聚类
// @Description 按id解析内容（contentType为空或all时查询全部集合），返回共同主题、聚类和洞察
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body models.PatternAnalysisRequest true "内容id列表"
// @Success 200 {object} models.PatternAnalysisReport "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Failure 404 {object} models.ErrorResponse "内容不存在"
// @Failure 502 {object} models.ErrorResponse "推理失败"
// @Failure 503 {object} models.ErrorResponse "内容存储或推理服务不可用"
// @Router /api/pattern-analysis [post]
func PatternAnalysisHandler(w http.ResponseWriter, r *http.Request, svc *services.PatternService) {
	var req models.PatternAnalysisRequest
	if err := utils.DecodeJSONBody(w, r, &req); err != nil {
		utils.WriteCustomErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, "invalid content ids provided")
		return
	}

	report, err := svc.Analyze(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, report)
}

// ConnectionsHandler godoc
// @Summary 为一条内容建议主题连接
// @Description 以存储中的内容为源，在所有已发布内容中挑选最相关的连接
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body models.ConnectionsRequest true "源内容"
// @Success 200 {object} models.ConnectionsReport "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Failure 404 {object} models.ErrorResponse "内容不存在"
// @Failure 502 {object} models.ErrorResponse "推理失败"
// @Failure 503 {object} models.ErrorResponse "内容存储或推理服务不可用"
// @Router /api/connections [post]
func ConnectionsHandler(w http.ResponseWriter, r *http.Request, svc *services.RecommendationService) {
	var req models.ConnectionsRequest
	if err := utils.DecodeJSONBody(w, r, &req); err != nil {
		utils.WriteCustomErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, "invalid request body")
		return
	}

	report, err := svc.SuggestConnectionsFor(r.Context(), req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, report)
}

// ListContentHandler godoc
// @Summary 浏览某一类型的内容
// @Description status为空时只返回已发布内容，any表示不过滤状态
// @Tags 内容
// @Produce json
// @Param contentType path string true "内容类型" Enums(writing, ranking, roundtable, media)
// @Param status query string false "状态" Enums(draft, published, archived, any)
// @Param category query string false "分类"
// @Param search query string false "标题或描述关键词"
// @Success 200 {object} models.ContentListResponse "成功"
// @Failure 400 {object} models.ErrorResponse "参数错误"
// @Router /api/content/{contentType} [get]
func ListContentHandler(w http.ResponseWriter, r *http.Request, svc *services.ContentService) {
	contentType := chi.URLParam(r, "contentType")
	q := r.URL.Query()

	items, err := svc.List(r.Context(), contentType, q.Get("status"), q.Get("category"), q.Get("search"))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	t, _ := models.ParseContentType(contentType)
	utils.WriteSuccessResponse(w, models.ContentListResponse{
		ContentType: t,
		Items:       items,
		Count:       len(items),
	})
}

// ContentStatsHandler godoc
// @Summary 各类型内容的状态统计
// @Tags 内容
// @Produce json
// @Success 200 {object} models.ContentStats "成功"
// @Failure 500 {object} models.ErrorResponse "服务器错误"
// @Router /api/content/stats [get]
func ContentStatsHandler(w http.ResponseWriter, r *http.Request, svc *services.ContentService) {
	stats, err := svc.Stats(r.Context())
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, stats)
}
