package app

import (
	"errors"

	"github.com/haierkeys/note-revision-service/pkg/code"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Ctx *gin.Context
}

type Pager struct {
	Page      int `json:"page"`      // Page number // 页码
	PageSize  int `json:"pageSize"`  // Page size // 每页数量
	TotalRows int `json:"totalRows"` // Total rows // 总行数
}

type ListRes struct {
	List  interface{} `json:"list"`  // Data list // 数据清单
	Pager Pager       `json:"pager"` // Pagination info // 翻页信息
}

// Res is the unified response structure: Code/Status/Msg/Data
// Optional fields use omitempty (not serialized when nil)
// Res 是统一的响应结构：Code/Status/Msg/Data
// 可选字段使用 omitempty（nil 则不会被序列化）
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取请求 IP
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

// ToResponse writes the unified Res body; the HTTP status comes from
// the response code registry.
// ToResponse 输出统一的 Res 响应体，HTTP 状态取自响应码注册表
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}

	if details := codeObj.Details(); len(details) > 0 {
		content.Details = details
	}

	r.Ctx.JSON(codeObj.StatusCode(), content)
}

// ToResponseError resolves a service layer error to a response. Errors
// carrying a registered code keep that code's HTTP status; anything
// else is reported as an internal error.
// ToResponseError 将服务层错误解析为响应。携带注册响应码的错误保留
// 其 HTTP 状态，其余错误按服务内部错误输出
func (r *Response) ToResponseError(err error) {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		r.ToResponse(codeErr)
		return
	}
	r.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}

// ToResponseList writes a paged list response
// ToResponseList 输出分页列表响应
func (r *Response) ToResponseList(codeObj *code.Code, list interface{}, totalRows int) {
	r.ToResponse(codeObj.WithData(ListRes{
		List: list,
		Pager: Pager{
			Page:      GetPage(r.Ctx),
			PageSize:  GetPageSize(r.Ctx),
			TotalRows: totalRows,
		},
	}))
}
