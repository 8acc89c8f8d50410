// Package validation 基于 go-playground/validator 的请求体校验
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"mrmelo_sanctuary/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 错误信息中使用json字段名
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
			return models.ContentType(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("content_type_or_all", func(fl validator.FieldLevel) bool {
			v := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			return v == "all" || models.ContentType(v).Valid()
		})
	})
	return validate
}

// FieldError 单个字段的校验失败
type FieldError struct {
	Field string
	Tag   string
}

// Error 校验失败集合
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, describe(f))
	}
	return strings.Join(parts, "; ")
}

// Struct 校验结构体，失败时返回 *Error
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

func describe(f FieldError) string {
	switch f.Tag {
	case "required":
		return fmt.Sprintf("%s is required", f.Field)
	case "min":
		return fmt.Sprintf("%s must not be empty", f.Field)
	case "max":
		return fmt.Sprintf("%s has too many entries", f.Field)
	case "content_type", "content_type_or_all":
		return fmt.Sprintf("%s is not a valid content type", f.Field)
	default:
		return fmt.Sprintf("%s failed %s validation", f.Field, f.Tag)
	}
}
