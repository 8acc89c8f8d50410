package utils

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/models"
)

// StatusCoder 可映射为HTTP响应的错误
type StatusCoder interface {
	error
	HTTPStatus() int
	ErrorCode() int
}

// WriteJSON 写入JSON响应
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// WriteSuccessResponse 写入200响应
func WriteSuccessResponse(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteErrorResponse 使用错误码表中的默认消息
func WriteErrorResponse(w http.ResponseWriter, status, code int) {
	WriteJSON(w, status, models.NewErrorResponse(code, ""))
}

// WriteCustomErrorResponse 写入自定义错误消息的响应
func WriteCustomErrorResponse(w http.ResponseWriter, status, code int, message string) {
	WriteJSON(w, status, models.NewErrorResponse(code, message))
}

// ClassifyError 把服务层错误映射为HTTP状态码、错误码和对外消息
// 4xx错误使用服务层错误自身的消息，不带外层包装；5xx错误的细节只进日志，对外使用错误码表中的消息
func ClassifyError(err error) (status, code int, message string) {
	var sc StatusCoder
	switch {
	case errors.As(err, &sc):
		status, code = sc.HTTPStatus(), sc.ErrorCode()
		if status < http.StatusInternalServerError {
			return status, code, sc.Error()
		}
	case IsSQLNoRowsError(err):
		status, code = http.StatusNotFound, models.CodeContentNotFound
	default:
		status, code = http.StatusInternalServerError, models.CodeServerError
	}
	return status, code, models.NewErrorResponse(code, "").Error
}

// WriteServiceError 处理服务层错误的通用函数
func WriteServiceError(w http.ResponseWriter, err error) {
	status, code, message := ClassifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Service request failed", "status", status, "error", err)
	}
	WriteCustomErrorResponse(w, status, code, message)
}

// DecodeJSONBody 解析请求体，上限1MB
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}
