package domain

import (
	"errors"

	"git.appkode.ru/pub/go/failure"
)

// AppError доменная ошибка с кодом для ответа API. Код попадает в поле
// "code" тела ошибки, сообщение в "detail".
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// WrapError сохраняет причину для errors.Is/As, клиенту она тоже видна.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, cause: err}
}

func (e *AppError) Error() string {
	if e.cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.cause.Error()
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is ошибки с одинаковым кодом считаются равными.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == e.Code
}

func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

func (e *AppError) PublicMessage() string {
	return e.Error()
}

func IsAppError(err error) bool {
	var appErr *AppError

	return errors.As(err, &appErr)
}

// GetCode код ближайшей AppError в цепочке.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "", false
	}

	return appErr.Code, true
}

// HasCode сокращение для errors.Is с пустой ошибкой нужного кода.
func HasCode(err error, code failure.ErrorCode) bool {
	return errors.Is(err, NewError(code, ""))
}
