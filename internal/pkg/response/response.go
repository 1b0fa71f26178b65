package response

import (
	"blogpessoal/internal/api/dto"
	"blogpessoal/internal/pkg/util"
	"blogpessoal/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Success 200 返回资源本体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 返回新建资源
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve util.ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: service.ErrParamInvalid.Error(),
			Errors:  ve,
		})
		return
	}

	if isJSONError(err) {
		Fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	code, ok := lookupCode(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error())
		return
	}
	// 资源不存在时不返回 body
	if code == http.StatusNotFound {
		c.AbortWithStatus(code)
		return
	}
	Fail(c, code, err.Error())
}

// lookupCode 按 errors.Is 匹配业务错误码
func lookupCode(err error) (int, bool) {
	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}

// isJSONError gin 的 json 实现取决于编译标签，两种类型都要识别
func isJSONError(err error) bool {
	var unmarshalTypeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError
	var stdUnmarshalTypeError *stdjson.UnmarshalTypeError
	var stdSyntaxError *stdjson.SyntaxError
	return errors.As(err, &unmarshalTypeError) ||
		errors.As(err, &syntaxError) ||
		errors.As(err, &stdUnmarshalTypeError) ||
		errors.As(err, &stdSyntaxError) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
