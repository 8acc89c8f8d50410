package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
)

// HealthHandler godoc
// @Summary 健康检查
// @Description 检查数据库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} models.HealthResponse "正常"
// @Failure 503 {object} models.HealthResponse "数据库不可用"
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request, conn *sql.DB) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if conn == nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded", Database: "not configured"})
		return
	}
	if err := conn.PingContext(ctx); err != nil {
		logger.Warn("Health check failed", "error", err)
		utils.WriteJSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	utils.WriteSuccessResponse(w, models.HealthResponse{Status: "ok", Database: "ok"})
}
