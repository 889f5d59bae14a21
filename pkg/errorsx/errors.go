// Package errorsx 定义带分类的业务错误，接口层据此映射 HTTP 状态码
package errorsx

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindInsufficientStock
	KindEmptyCart
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindEmptyCart:
		return "empty_cart"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error 业务错误
type Error struct {
	kind    Kind
	code    string
	message string
	cause   error
}

// New 创建业务错误
func New(kind Kind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

// Wrap 创建携带底层原因的业务错误
func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{kind: kind, code: code, message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Kind 错误分类
func (e *Error) Kind() Kind { return e.kind }

// Code 机器可读的错误码
func (e *Error) Code() string { return e.code }

// Message 面向客户端的错误描述
func (e *Error) Message() string { return e.message }

// Validation 参数校验错误
func Validation(message string) *Error {
	return New(KindValidation, "VALIDATION_FAILED", message)
}

// Validationf 格式化的参数校验错误
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound 资源不存在
func NotFound(message string) *Error {
	return New(KindNotFound, "NOT_FOUND", message)
}

// Unauthorized 未认证
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, "UNAUTHORIZED", message)
}

// Conflict 唯一性冲突
func Conflict(message string) *Error {
	return New(KindConflict, "CONFLICT", message)
}

// Store 存储层故障
func Store(message string, cause error) *Error {
	return Wrap(KindStore, "STORE_FAILURE", message, cause)
}

type kinded interface {
	Kind() Kind
}

type messenger interface {
	Message() string
}

// KindOf 返回错误链上第一个带分类的错误的分类
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// Is 判断错误链是否属于指定分类
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// PublicMessage 返回可暴露给客户端的描述，存储与未知错误不透出原因
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindUnknown, KindStore:
		return "internal server error"
	}
	var m messenger
	if errors.As(err, &m) {
		return m.Message()
	}
	return err.Error()
}

// CodeOf 返回错误码
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	var c interface{ Code() string }
	if errors.As(err, &c) {
		return c.Code()
	}
	if KindOf(err) == KindUnknown {
		return "INTERNAL"
	}
	return KindOf(err).String()
}
