// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/haierkeys/note-revision-service/global"
	"github.com/haierkeys/note-revision-service/internal/service"
	"github.com/haierkeys/note-revision-service/pkg/app"
	"github.com/haierkeys/note-revision-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Note struct {
}

func NewNote() *Note {
	return &Note{}
}

// Create 创建笔记
func (n *Note) Create(c *gin.Context) {
	params := &service.NoteCreateRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	note, err := svc.NoteCreate(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.Create svc NoteCreate err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.SuccessCreated.WithData(note))
}

// Get 获取单条笔记
func (n *Note) Get(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	note, err := svc.NoteGet(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.Get svc NoteGet err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Update applies an edit. A no-op edit (nothing changed after
// trimming) responds with the current state and a not-modified code.
// Update 应用编辑，空操作编辑返回当前状态与未修改响应码
func (n *Note) Update(c *gin.Context) {
	params := &service.NoteUpdateRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	note, changed, err := svc.NoteUpdate(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.Update svc NoteUpdate err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	if !changed {
		response.ToResponse(code.SuccessNotModified.WithData(note))
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Undo 撤销最近一次编辑
func (n *Note) Undo(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Undo.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	note, err := svc.NoteUndo(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.Undo svc NoteUndo err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Redo 重做最近一次被撤销的编辑
func (n *Note) Redo(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Redo.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	note, err := svc.NoteRedo(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.Redo svc NoteRedo err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Delete 将笔记移入回收站
func (n *Note) Delete(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	if err := svc.NoteDelete(params); err != nil {
		global.Logger.Error("apiRouter.Note.Delete svc NoteDelete err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success)
}

// Restore 从回收站恢复笔记
func (n *Note) Restore(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Restore.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	note, err := svc.NoteRestore(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.Restore svc NoteRestore err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success.WithData(note))
}

// Purge 永久删除回收站中的笔记
func (n *Note) Purge(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.Purge.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	if err := svc.NotePurge(params); err != nil {
		global.Logger.Error("apiRouter.Note.Purge svc NotePurge err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success)
}

// History 获取笔记的撤销/重做历史预览
func (n *Note) History(c *gin.Context) {
	params := &service.NoteGetRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.History.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	svc := service.New(c)
	history, err := svc.NoteHistory(params)
	if err != nil {
		global.Logger.Error("apiRouter.Note.History svc NoteHistory err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponse(code.Success.WithData(history))
}

// List 获取笔记列表
func (n *Note) List(c *gin.Context) {
	params := &service.NoteListRequestParams{}
	response := app.NewResponse(c)
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Logger.Error("apiRouter.Note.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	pager := &app.Pager{Page: app.GetPage(c), PageSize: app.GetPageSize(c)}
	svc := service.New(c)
	list, count, err := svc.NoteList(params, pager)
	if err != nil {
		global.Logger.Error("apiRouter.Note.List svc NoteList err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponseList(code.Success, list, count)
}

// TrashList 获取回收站列表
func (n *Note) TrashList(c *gin.Context) {
	response := app.NewResponse(c)

	pager := &app.Pager{Page: app.GetPage(c), PageSize: app.GetPageSize(c)}
	svc := service.New(c)
	list, count, err := svc.NoteTrashList(pager)
	if err != nil {
		global.Logger.Error("apiRouter.Note.TrashList svc NoteTrashList err", zap.Error(err))
		response.ToResponseError(err)
		return
	}
	response.ToResponseList(code.Success, list, count)
}
