package code

import (
	"fmt"
	"net/http"
)

// Code is a registered response code with a language-aware message
// Code 是带多语言消息的已注册响应码
type Code struct {
	code       int
	status     bool
	httpStatus int
	Lang       lang
	data       interface{}
	haveData   bool
	details    []string
}

var codes = map[int]string{}

// NewError registers a failure code. The HTTP status defaults to 200
// and is overridden with WithStatusCode at registration time.
// NewError 注册一个失败码。HTTP 状态默认为 200，注册时可用 WithStatusCode 覆盖
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("code %d already exists, pick another one", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, httpStatus: http.StatusOK, Lang: l}
}

// NewSuss registers a success code
// NewSuss 注册一个成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("code %d already exists, pick another one", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: true, httpStatus: http.StatusOK, Lang: l}
}

// WithStatusCode sets the HTTP status written for this code
// WithStatusCode 设置该响应码对应的 HTTP 状态
func (e *Code) WithStatusCode(status int) *Code {
	e.httpStatus = status
	return e
}

// Clone returns a fresh copy so WithData/WithDetails never mutate the registry entry
// Clone 返回一个新副本，保证 WithData/WithDetails 不会污染注册表里的对象
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		Lang:       e.Lang,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) StatusCode() int {
	return e.httpStatus
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveData = e.haveData
	c.data = e.data
	c.details = append([]string{}, details...)
	return c
}
