package models

// 响应码定义
const (
	// 成功
	CodeSuccess = 0

	// 客户端错误 (1000-1999)
	CodeInvalidParams   = 1000 // 无效的参数
	CodeMissingParams   = 1001 // 缺少必要参数
	CodeContentNotFound = 1002 // 内容不存在
	CodeRateLimited     = 1003 // 请求过于频繁

	// 服务端错误 (2000-2999)
	CodeServerError      = 2000 // 服务器内部错误
	CodeDatabaseError    = 2001 // 数据库错误
	CodeInferenceError   = 2002 // 推理失败
	CodeInferenceTimeout = 2003 // 推理超时
	CodeInferenceDown    = 2004 // 推理服务不可用
)

// 错误码对应的消息
var CodeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeInvalidParams:    "invalid parameters",
	CodeMissingParams:    "missing required fields",
	CodeContentNotFound:  "no content found",
	CodeRateLimited:      "too many requests",
	CodeServerError:      "internal server error",
	CodeDatabaseError:    "database error",
	CodeInferenceError:   "failed to generate analysis",
	CodeInferenceTimeout: "analysis timed out",
	CodeInferenceDown:    "analysis service temporarily unavailable",
}

// ErrorResponse 错误响应体：{ "error": "...", "code": 1001 }
type ErrorResponse struct {
	Error string `json:"error" example:"missing required fields"`
	Code  int    `json:"code" example:"1001"`
}

// NewErrorResponse 创建错误响应，message为空时使用错误码默认消息
func NewErrorResponse(code int, message string) ErrorResponse {
	if message == "" {
		var ok bool
		message, ok = CodeMessages[code]
		if !ok {
			message = "unknown error"
		}
	}
	return ErrorResponse{Error: message, Code: code}
}
