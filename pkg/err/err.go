package errprocess

import (
	"errors"
	"fmt"

	"operator_console/pkg/logger"

	"go.uber.org/zap"
)

// Kind 錯誤分類
type Kind int

const (
	// KindValidation 本地驗證失敗，不會發出任何請求
	KindValidation Kind = iota
	// KindRemote 網路錯誤或非 2xx
	KindRemote
	// KindRejected server 回傳 success:false
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	case KindRejected:
		return "rejected"
	}
	return "unknown"
}

// Error 使用者可見的錯誤，Message 即畫面上顯示的文字
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCoder 帶 HTTP 狀態碼與 server message 的錯誤 (apiclient.StatusError)
type StatusCoder interface {
	StatusCode() int
	ServerMessage() string
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Validation 本地驗證錯誤
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Remote 遠端失敗；server 有回 message 時優先使用，否則用 fallback
func Remote(op string, err error, fallback string) error {
	e := &Error{Kind: KindRemote, Op: op, Message: fallback, Err: err}

	var sc StatusCoder
	if errors.As(err, &sc) {
		e.Status = sc.StatusCode()
		if msg := sc.ServerMessage(); msg != "" {
			e.Message = msg
		}
	}

	logger.Log.Error("remote call failed",
		zap.String("op", op),
		zap.Int("status", e.Status),
		zap.Error(err),
	)
	return e
}

// Rejected server 回應 success:false
func Rejected(op, serverMsg, fallback string) error {
	msg := fallback
	if serverMsg != "" {
		msg = serverMsg
	}
	logger.Log.Warn("request rejected by server", zap.String("op", op), zap.String("message", serverMsg))
	return &Error{Kind: KindRejected, Op: op, Message: msg}
}

// IsValidation 是否為本地驗證錯誤
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// KindOf 取得錯誤分類，非 *Error 視為 remote
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRemote
}

// Describe log 用的詳細描述
func Describe(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return fmt.Sprintf("%s (%s: %v)", e.Message, e.Op, e.Err)
	}
	return err.Error()
}
