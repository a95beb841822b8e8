package code

import "net/http"

// Registered response codes. The HTTP status attached to each code is
// what ToResponse writes: 2xx success, 400 validation / empty history,
// 404 missing note, 409 stale write, 429 throttled, 500 everything else.
// 已注册的响应码。每个码绑定的 HTTP 状态即 ToResponse 输出的状态码
var (
	Success = NewSuss(0, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	SuccessCreated = NewSuss(1, lang{
		en:    "Created",
		zh_cn: "创建成功",
	}).WithStatusCode(http.StatusCreated)
	SuccessNotModified = NewSuss(2, lang{
		en:    "No change was applied",
		zh_cn: "未产生任何修改",
	})

	Failed = NewError(10000000, lang{
		en:    "Failed",
		zh_cn: "失败",
	})
	ErrorServerInternal = NewError(10000001, lang{
		en:    "Server internal error",
		zh_cn: "服务内部错误",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorInvalidParams = NewError(10000002, lang{
		en:    "Invalid params",
		zh_cn: "入参错误",
	}).WithStatusCode(http.StatusBadRequest)
	ErrorNotFoundAPI = NewError(10000003, lang{
		en:    "Not found API",
		zh_cn: "接口不存在",
	}).WithStatusCode(http.StatusNotFound)
	ErrorTooManyRequests = NewError(10000004, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	}).WithStatusCode(http.StatusTooManyRequests)
	ErrorRequestTimeout = NewError(10000005, lang{
		en:    "Request timeout",
		zh_cn: "请求超时",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorDBQuery = NewError(10000006, lang{
		en:    "Database query error",
		zh_cn: "数据库查询错误",
	}).WithStatusCode(http.StatusInternalServerError)

	ErrorNoteNotFound = NewError(10010001, lang{
		en:    "Note not found",
		zh_cn: "笔记不存在",
	}).WithStatusCode(http.StatusNotFound)
	ErrorNoteCreateFailed = NewError(10010002, lang{
		en:    "Failed to create note",
		zh_cn: "创建笔记失败",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorNoteUpdateFailed = NewError(10010003, lang{
		en:    "Failed to update note",
		zh_cn: "更新笔记失败",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorNoteDeleteFailed = NewError(10010004, lang{
		en:    "Failed to delete note",
		zh_cn: "删除笔记失败",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorNoteListFailed = NewError(10010005, lang{
		en:    "Failed to list notes",
		zh_cn: "获取笔记列表失败",
	}).WithStatusCode(http.StatusInternalServerError)
	ErrorNoteRestoreFailed = NewError(10010006, lang{
		en:    "Failed to restore note",
		zh_cn: "恢复笔记失败",
	}).WithStatusCode(http.StatusInternalServerError)

	ErrorStaleWrite = NewError(10020001, lang{
		en:    "Note was modified by another request, refetch before retrying",
		zh_cn: "笔记已被其他请求修改，请重新获取后再提交",
	}).WithStatusCode(http.StatusConflict)
	ErrorNothingToUndo = NewError(10020002, lang{
		en:    "No changes to undo",
		zh_cn: "没有可撤销的修改",
	}).WithStatusCode(http.StatusBadRequest)
	ErrorNothingToRedo = NewError(10020003, lang{
		en:    "No changes to redo",
		zh_cn: "没有可重做的修改",
	}).WithStatusCode(http.StatusBadRequest)
)
