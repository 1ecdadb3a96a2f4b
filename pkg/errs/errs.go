package errs

import (
	"errors"
	"net/http"
)

// Kind 业务错误分类
type Kind uint8

const (
	Internal Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Conflict
	InvalidInput
	InsufficientPoints
	InsufficientStock
	Expired
	AlreadyUsed
	Configuration
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	Unauthorized:       "unauthorized",
	Forbidden:          "forbidden",
	NotFound:           "not_found",
	Conflict:           "conflict",
	InvalidInput:       "invalid_input",
	InsufficientPoints: "insufficient_points",
	InsufficientStock:  "insufficient_stock",
	Expired:            "expired",
	AlreadyUsed:        "already_used",
	Configuration:      "configuration",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// HTTPStatus 错误分类对应的 HTTP 状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict, AlreadyUsed:
		return http.StatusConflict
	case InvalidInput:
		return http.StatusBadRequest
	case InsufficientPoints, InsufficientStock:
		return http.StatusUnprocessableEntity
	case Expired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf 返回错误链中第一个 *Error 的分类，未分类的错误视为 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is 判断错误链中是否存在指定分类
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
