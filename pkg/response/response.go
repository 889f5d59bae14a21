// Package response 统一 HTTP 响应结构
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Success 返回 200 与数据
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// Created 返回 201 与数据
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// ErrorWithStatus 返回指定状态码的错误
func ErrorWithStatus(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, Response{Code: status, Message: message, Detail: detail})
}

// Error 根据错误分类映射状态码，5xx 只记录原因不返回
func Error(c *gin.Context, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	ErrorWithStatus(c, status, errorsx.PublicMessage(err), errorsx.CodeOf(err))
}

// StatusOf 错误分类对应的 HTTP 状态码
func StatusOf(err error) int {
	switch errorsx.KindOf(err) {
	case errorsx.KindValidation, errorsx.KindEmptyCart, errorsx.KindInsufficientStock:
		return http.StatusBadRequest
	case errorsx.KindNotFound:
		return http.StatusNotFound
	case errorsx.KindUnauthorized:
		return http.StatusUnauthorized
	case errorsx.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
