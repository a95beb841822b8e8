package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/haierkeys/note-revision-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError is the unified application error carried across layers.
// It keeps the registry code, message, optional details, the request
// trace id and the original cause.
// AppError 统一应用错误结构体，携带错误码、消息、详情、追踪ID和原始错误
type AppError struct {
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	TraceID   string    `json:"traceId,omitempty"`
	Cause     error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`

	httpStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is / errors.As chains
// Unwrap 支持 errors.Is / errors.As 链路
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates an AppError from a registry Code
// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:       c.Code(),
		Message:    c.Msg(),
		Details:    c.Details(),
		Cause:      cause,
		Timestamp:  time.Now(),
		httpStatus: c.StatusCode(),
	}
}

// WithTraceID sets the trace id (chainable)
// WithTraceID 设置 TraceID（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails sets the details (chainable)
// WithDetails 设置详情（链式调用）
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// ErrorResponse resolves an error coming out of the service layer to a
// JSON response. The HTTP status comes from the registered code.
// ErrorResponse 统一错误响应处理，HTTP 状态取自注册的响应码
func ErrorResponse(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		status := appErr.httpStatus
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(codeErr.StatusCode(), &AppError{
			Code:      codeErr.Code(),
			Message:   codeErr.Msg(),
			Details:   codeErr.Details(),
			TraceID:   traceID,
			Timestamp: time.Now(),
		})
		return
	}

	// Unknown error, never leak internals to the client
	// 未知错误，不向客户端泄露内部细节
	c.JSON(http.StatusInternalServerError, &AppError{
		Code:      code.ErrorServerInternal.Code(),
		Message:   code.ErrorServerInternal.Msg(),
		TraceID:   traceID,
		Timestamp: time.Now(),
	})
}

// IsAppError reports whether err wraps an AppError
// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
