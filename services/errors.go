package services

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/validation"
)

// ValidationError 请求参数不合法，在任何存储或推理调用之前返回
type ValidationError struct {
	Message string
	Missing bool
}

func (e *ValidationError) Error() string { return e.Message }

// HTTPStatus 400
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// ErrorCode 区分缺参与非法参数
func (e *ValidationError) ErrorCode() int {
	if e.Missing {
		return models.CodeMissingParams
	}
	return models.CodeInvalidParams
}

// newValidationError 把validator的字段错误转换为ValidationError
func newValidationError(err error) error {
	if err == nil {
		return nil
	}
	verr := &ValidationError{Message: err.Error()}
	var fields *validation.Error
	if errors.As(err, &fields) {
		for _, f := range fields.Fields {
			if f.Tag == "required" {
				verr.Missing = true
				break
			}
		}
	}
	return verr
}

// NotFoundError id解析结果为空
type NotFoundError struct {
	Resource string
	IDs      []string
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("no %s found", e.Resource)
	}
	return fmt.Sprintf("no %s found for ids [%s]", e.Resource, strings.Join(e.IDs, ", "))
}

// HTTPStatus 404
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// ErrorCode 内容不存在
func (e *NotFoundError) ErrorCode() int { return models.CodeContentNotFound }

// InferenceKind 推理失败的类别
type InferenceKind string

const (
	InferenceRequest     InferenceKind = "request"
	InferenceTimeout     InferenceKind = "timeout"
	InferenceParse       InferenceKind = "parse"
	InferenceSchema      InferenceKind = "schema"
	InferenceUnavailable InferenceKind = "unavailable"
)

// InferenceError 生成式模型调用失败、超时或输出不符合约定
type InferenceError struct {
	Op   string
	Kind InferenceKind
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// HTTPStatus 超时504，熔断503，其余502
func (e *InferenceError) HTTPStatus() int {
	switch e.Kind {
	case InferenceTimeout:
		return http.StatusGatewayTimeout
	case InferenceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// ErrorCode 推理错误码
func (e *InferenceError) ErrorCode() int {
	switch e.Kind {
	case InferenceTimeout:
		return models.CodeInferenceTimeout
	case InferenceUnavailable:
		return models.CodeInferenceDown
	default:
		return models.CodeInferenceError
	}
}

// AggregationError 集合加载失败；部分失败只记录日志，全部失败时返回给调用方
type AggregationError struct {
	Failed map[models.ContentType]error
}

func (e *AggregationError) Error() string {
	types := make([]string, 0, len(e.Failed))
	for t := range e.Failed {
		types = append(types, string(t))
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %v", t, e.Failed[models.ContentType(t)]))
	}
	return "aggregation partially failed: " + strings.Join(parts, "; ")
}

func (e *AggregationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		errs = append(errs, err)
	}
	return errs
}

// HTTPStatus 只有全部集合失败时才会返回给调用方，503
func (e *AggregationError) HTTPStatus() int { return http.StatusServiceUnavailable }

// ErrorCode 数据库错误
func (e *AggregationError) ErrorCode() int { return models.CodeDatabaseError }

// Complete 是否所有集合都失败了
func (e *AggregationError) Complete(total int) bool {
	return len(e.Failed) >= total
}
