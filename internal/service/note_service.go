package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/note-revision-service/global"
	"github.com/haierkeys/note-revision-service/internal/dao"
	"github.com/haierkeys/note-revision-service/internal/history"
	"github.com/haierkeys/note-revision-service/internal/model"
	"github.com/haierkeys/note-revision-service/pkg/app"
	"github.com/haierkeys/note-revision-service/pkg/code"
	"github.com/haierkeys/note-revision-service/pkg/diff"
	"github.com/haierkeys/note-revision-service/pkg/logger"
	"github.com/haierkeys/note-revision-service/pkg/timex"
	"github.com/haierkeys/note-revision-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NoteCreateRequestParams struct {
	Title   string `json:"title" form:"title" binding:"required,max=512"` // 标题
	Content string `json:"content" form:"content" binding:"omitempty"`    // 内容
}

type NoteGetRequestParams struct {
	ID int64 `json:"id" form:"id" uri:"id" binding:"required,gte=1"` // 笔记ID
}

type NoteUpdateRequestParams struct {
	ID int64 `json:"id" form:"id" binding:"required,gte=1"` // 笔记ID
	// Title 与 Content 为 nil 时表示该字段不参与本次编辑
	Title   *string `json:"title" form:"title" binding:"omitempty,max=512"`
	Content *string `json:"content" form:"content" binding:"omitempty"`
	// LastKnownUpdate 客户端上次读取到的冲突令牌，省略时跳过过期检查
	LastKnownUpdate *int64 `json:"lastKnownUpdate" form:"lastKnownUpdate" binding:"omitempty"`
}

type NoteListRequestParams struct {
	Keyword string `json:"keyword" form:"keyword" binding:"omitempty,max=512"` // 标题关键字
}

// NoteDTO 笔记数据传输对象，携带派生的历史状态字段
type NoteDTO struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	UpdatedTimestamp int64      `json:"updatedTimestamp"`
	CanUndo          bool       `json:"canUndo"`
	CanRedo          bool       `json:"canRedo"`
	UndoCount        int        `json:"undoCount"`
	RedoCount        int        `json:"redoCount"`
	CreatedAt        timex.Time `json:"createdAt"`
	UpdatedAt        timex.Time `json:"updatedAt"`
}

// NoteTrashDTO 回收站笔记 DTO
type NoteTrashDTO struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	UpdatedTimestamp int64      `json:"updatedTimestamp"`
	DeletedAt        timex.Time `json:"deletedAt"`
}

// NoteHistoryEntryDTO 单条历史快照的预览
type NoteHistoryEntryDTO struct {
	Title        string `json:"title"`
	EditedAt     int64  `json:"editedAt"`
	CharsAdded   int    `json:"charsAdded"`   // 相对当前内容新增字符数
	CharsRemoved int    `json:"charsRemoved"` // 相对当前内容删除字符数
	Patch        string `json:"patch"`        // 快照内容到当前内容的补丁文本
}

// NoteHistoryDTO 笔记历史预览
type NoteHistoryDTO struct {
	ID        int64                  `json:"id"`
	UndoStack []*NoteHistoryEntryDTO `json:"undoStack"`
	RedoStack []*NoteHistoryEntryDTO `json:"redoStack"`
	UndoCount int                    `json:"undoCount"`
	RedoCount int                    `json:"redoCount"`
}

// noteToDTO 将 dao 记录转换为 DTO，并计算派生历史字段
func noteToDTO(n *dao.Note) *NoteDTO {
	return &NoteDTO{
		ID:               n.ID,
		Title:            n.Title,
		Content:          n.Content,
		UpdatedTimestamp: n.UpdatedTimestamp,
		CanUndo:          len(n.UndoHistory) > 0,
		CanRedo:          len(n.RedoHistory) > 0,
		UndoCount:        len(n.UndoHistory),
		RedoCount:        len(n.RedoHistory),
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

// noteToDocument 由持久化记录构建引擎操作的文档值
func noteToDocument(n *dao.Note) *history.Document {
	return &history.Document{
		Title:            n.Title,
		Content:          n.Content,
		UpdatedTimestamp: n.UpdatedTimestamp,
		Undo:             history.Stack(n.UndoHistory),
		Redo:             history.Stack(n.RedoHistory),
	}
}

// documentToSet 将引擎产出的文档状态打包为 dao 更新参数
func documentToSet(doc *history.Document) *dao.NoteSet {
	return &dao.NoteSet{
		Title:            doc.Title,
		Content:          doc.Content,
		UpdatedTimestamp: doc.UpdatedTimestamp,
		UndoHistory:      model.SnapshotList(doc.Undo),
		RedoHistory:      model.SnapshotList(doc.Redo),
	}
}

// NoteCreate 创建笔记，历史栈初始为空
func (svc *Service) NoteCreate(params *NoteCreateRequestParams) (*NoteDTO, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, code.ErrorInvalidParams.WithDetails("title must not be blank")
	}

	doc := &history.Document{}
	svc.engine.ApplyEdit(doc, &params.Title, &params.Content)

	set := documentToSet(doc)
	// 创建即便内容为空也要持有冲突令牌
	if set.UpdatedTimestamp == 0 {
		set.UpdatedTimestamp = timex.Now().UnixMilli()
	}
	// 新建笔记不保留创建前的空快照
	set.UndoHistory = nil
	set.RedoHistory = nil

	note, err := svc.dao.NoteCreate(set)
	if err != nil {
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}
	return noteToDTO(note), nil
}

// NoteGet 获取单条笔记，singleflight 合并同一笔记的并发读取
func (svc *Service) NoteGet(params *NoteGetRequestParams) (*NoteDTO, error) {
	key := fmt.Sprintf("note_get_%d", params.ID)
	v, err, _ := svc.SF.Do(key, func() (any, error) {
		return svc.dao.NoteGetById(params.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return noteToDTO(v.(*dao.Note)), nil
}

// NoteList 获取笔记列表
func (svc *Service) NoteList(params *NoteListRequestParams, pager *app.Pager) ([]*NoteDTO, int, error) {
	count, err := svc.dao.NoteListCount(params.Keyword)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}
	notes, err := svc.dao.NoteList(params.Keyword, pager.Page, pager.PageSize)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	list := make([]*NoteDTO, 0, len(notes))
	for _, n := range notes {
		list = append(list, noteToDTO(n))
	}
	return list, int(count), nil
}

// NoteUpdate applies an edit through the history engine. The stale
// check runs first and aborts before any state is touched; a no-op
// edit returns the current state with changed=false and writes
// nothing.
// NoteUpdate 通过历史引擎应用编辑。过期检查最先执行，失败时不触碰
// 任何状态；空操作编辑返回当前状态且不落库
func (svc *Service) NoteUpdate(params *NoteUpdateRequestParams) (*NoteDTO, bool, error) {
	// 字段校验先于一切状态检查；编辑中的字段去除空白后必须非空
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, false, code.ErrorInvalidParams.WithDetails("title must not be blank")
	}
	if params.Content != nil && strings.TrimSpace(*params.Content) == "" {
		return nil, false, code.ErrorInvalidParams.WithDetails("content must not be blank")
	}

	note, err := svc.dao.NoteGetById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, code.ErrorNoteNotFound
		}
		return nil, false, code.ErrorDBQuery.WithDetails(err.Error())
	}

	doc := noteToDocument(note)
	if err := svc.engine.CheckStale(doc, params.LastKnownUpdate); err != nil {
		return nil, false, code.ErrorStaleWrite
	}

	if !svc.engine.ApplyEdit(doc, params.Title, params.Content) {
		return noteToDTO(note), false, nil
	}

	saved, err := svc.dao.NoteSave(documentToSet(doc), note.ID)
	if err != nil {
		return nil, false, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}
	dto := noteToDTO(saved)
	global.Logger.Info("note edit applied",
		zap.Int64(logger.FieldNoteID, dto.ID),
		zap.Int(logger.FieldUndoDepth, dto.UndoCount),
		zap.Int(logger.FieldRedoDepth, dto.RedoCount))
	return dto, true, nil
}

// NoteUndo 撤销最近一次编辑
func (svc *Service) NoteUndo(params *NoteGetRequestParams) (*NoteDTO, error) {
	note, err := svc.dao.NoteGetById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	doc := noteToDocument(note)
	if err := svc.engine.Undo(doc); err != nil {
		return nil, code.ErrorNothingToUndo
	}

	saved, err := svc.dao.NoteSave(documentToSet(doc), note.ID)
	if err != nil {
		return nil, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}
	dto := noteToDTO(saved)
	global.Logger.Info("note undo applied",
		zap.Int64(logger.FieldNoteID, dto.ID),
		zap.Int(logger.FieldUndoDepth, dto.UndoCount),
		zap.Int(logger.FieldRedoDepth, dto.RedoCount))
	return dto, nil
}

// NoteRedo 重做最近一次被撤销的编辑
func (svc *Service) NoteRedo(params *NoteGetRequestParams) (*NoteDTO, error) {
	note, err := svc.dao.NoteGetById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	doc := noteToDocument(note)
	if err := svc.engine.Redo(doc); err != nil {
		return nil, code.ErrorNothingToRedo
	}

	saved, err := svc.dao.NoteSave(documentToSet(doc), note.ID)
	if err != nil {
		return nil, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}
	dto := noteToDTO(saved)
	global.Logger.Info("note redo applied",
		zap.Int64(logger.FieldNoteID, dto.ID),
		zap.Int(logger.FieldUndoDepth, dto.UndoCount),
		zap.Int(logger.FieldRedoDepth, dto.RedoCount))
	return dto, nil
}

// NoteDelete moves a note to trash. The history stacks are left
// untouched so a later restore resumes undo and redo exactly where
// they stopped.
// NoteDelete 将笔记移入回收站，历史栈保持不变，
// 恢复后撤销/重做从停止处继续
func (svc *Service) NoteDelete(params *NoteGetRequestParams) error {
	_, err := svc.dao.NoteGetById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := svc.dao.NoteUpdateDelete(params.ID); err != nil {
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}
	return nil
}

// NoteRestore 从回收站恢复笔记
func (svc *Service) NoteRestore(params *NoteGetRequestParams) (*NoteDTO, error) {
	note, err := svc.dao.NoteGetAnyById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note.IsDeleted == 0 {
		// 未删除的笔记恢复是空操作
		return noteToDTO(note), nil
	}
	if err := svc.dao.NoteUpdateRestore(params.ID); err != nil {
		return nil, code.ErrorNoteRestoreFailed.WithDetails(err.Error())
	}
	restored, err := svc.dao.NoteGetById(params.ID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return noteToDTO(restored), nil
}

// NotePurge 将回收站中的笔记连同历史栈一并永久删除
func (svc *Service) NotePurge(params *NoteGetRequestParams) error {
	note, err := svc.dao.NoteGetAnyById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note.IsDeleted == 0 {
		// 仅允许清除已在回收站中的笔记
		return code.ErrorInvalidParams.WithDetails("note is not in trash")
	}
	if err := svc.dao.NoteDelete(params.ID); err != nil {
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}
	return nil
}

// NoteTrashList 获取回收站列表
func (svc *Service) NoteTrashList(pager *app.Pager) ([]*NoteTrashDTO, int, error) {
	count, err := svc.dao.NoteTrashListCount()
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}
	notes, err := svc.dao.NoteTrashList(pager.Page, pager.PageSize)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	list := make([]*NoteTrashDTO, 0, len(notes))
	for _, n := range notes {
		list = append(list, &NoteTrashDTO{
			ID:               n.ID,
			Title:            n.Title,
			UpdatedTimestamp: n.UpdatedTimestamp,
			DeletedAt:        n.DeletedAt,
		})
	}
	return list, int(count), nil
}

// NoteHistory builds a preview of both stacks with per-snapshot
// character add/remove counts and a patch against the current content.
// NoteHistory 构建两个栈的预览，每条快照给出相对当前内容的字符增删统计与补丁文本
func (svc *Service) NoteHistory(params *NoteGetRequestParams) (*NoteHistoryDTO, error) {
	note, err := svc.dao.NoteGetAnyById(params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	preview := func(snaps model.SnapshotList) []*NoteHistoryEntryDTO {
		entries := make([]*NoteHistoryEntryDTO, 0, len(snaps))
		for _, s := range snaps {
			added, removed := diff.Changes(s.Content, note.Content)
			entries = append(entries, &NoteHistoryEntryDTO{
				Title:        s.Title,
				EditedAt:     s.EditedAt,
				CharsAdded:   added,
				CharsRemoved: removed,
				Patch:        diff.Patch(s.Content, note.Content),
			})
		}
		return entries
	}

	return &NoteHistoryDTO{
		ID:        note.ID,
		UndoStack: preview(note.UndoHistory),
		RedoStack: preview(note.RedoHistory),
		UndoCount: len(note.UndoHistory),
		RedoCount: len(note.RedoHistory),
	}, nil
}

// NoteCleanup permanently removes trashed notes older than the
// configured retention. Runs from the task scheduler.
// NoteCleanup 永久删除超过保留期的回收站笔记，由任务调度器触发
func (svc *Service) NoteCleanup() (int64, error) {
	retention, err := util.ParseDuration(global.Config.App.SoftDeleteRetentionTime)
	if err != nil {
		return 0, err
	}
	cutoff := timex.Time(time.Now().Add(-retention))

	removed, err := svc.dao.NoteDeleteExpired(cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		global.Logger.Info("trash cleanup removed expired notes",
			zap.Int64("count", removed),
			zap.String("retention", global.Config.App.SoftDeleteRetentionTime))
	}
	return removed, nil
}
