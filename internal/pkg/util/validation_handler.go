package util

import (
	"blogpessoal/internal/api/dto"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = mustNewValidator()

func mustNewValidator() *validator.Validate {
	v, err := newValidator()
	if err != nil {
		panic(err)
	}
	return v
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register notblank validation: %w", err)
	}
	// 使用 json 标签作为字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v, nil
}

// ValidationError 字段校验失败列表，按结构体字段顺序排列
type ValidationError []dto.FieldError

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

// Validate 执行 validate 标签校验，字段通过 msg 取得提示文案；msg 缺省时回落到规则名
func Validate(dto any, msg func(field, tag string) string) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	out := make(ValidationError, 0, len(vErrs))
	seen := make(map[string]struct{}, len(vErrs))
	for _, fe := range vErrs {
		if _, ok := seen[fe.Field()]; ok {
			continue
		}
		seen[fe.Field()] = struct{}{}

		text := ""
		if msg != nil {
			text = msg(fe.Field(), fe.Tag())
		}
		if text == "" {
			text = fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", fe.Field(), fe.Tag())
		}
		out = append(out, dto.FieldError{Field: fe.Field(), Message: text})
	}
	return out
}
