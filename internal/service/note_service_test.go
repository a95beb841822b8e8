package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/note-revision-service/global"
	internalApp "github.com/haierkeys/note-revision-service/internal/app"
	"github.com/haierkeys/note-revision-service/internal/model"
	"github.com/haierkeys/note-revision-service/pkg/app"
	"github.com/haierkeys/note-revision-service/pkg/code"
	"github.com/haierkeys/note-revision-service/pkg/timex"
	"github.com/haierkeys/note-revision-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, "Note"))

	global.DBEngine = db
	global.Logger = zap.NewNop()
	global.Config = &internalApp.AppConfig{
		App: internalApp.AppSettings{
			DefaultPageSize:         10,
			MaxPageSize:             100,
			MaxHistory:              20,
			SoftDeleteRetentionTime: "7d",
			TrashPurgeSchedule:      "30 3 * * *",
		},
	}

	return NewBackground(context.Background())
}

func strPtr(s string) *string { return &s }

func TestServiceSharedSingleflight(t *testing.T) {
	svcA := setupService(t)
	svcB := NewBackground(context.Background())

	// 所有实例共用同一个 group，并发同 key 调用才能被合并
	require.Same(t, svcA.SF, svcB.SF)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _, _ = svcA.SF.Do("note_get_shared", func() (interface{}, error) {
			close(started)
			<-release
			return "first", nil
		})
	}()
	<-started

	ch := svcB.SF.DoChan("note_get_shared", func() (interface{}, error) {
		return "second", nil
	})
	close(release)

	res := <-ch
	require.NoError(t, res.Err)
	assert.Equal(t, "first", res.Val)
	assert.True(t, res.Shared)
}

func TestNoteLifecycle(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "draft", Content: "first"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CanUndo)
	assert.False(t, created.CanRedo)
	assert.Zero(t, created.UndoCount)

	updated, changed, err := svc.NoteUpdate(&NoteUpdateRequestParams{
		ID:      created.ID,
		Content: strPtr("second"),
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "second", updated.Content)
	assert.True(t, updated.CanUndo)
	assert.Equal(t, 1, updated.UndoCount)
	assert.Greater(t, updated.UpdatedTimestamp, created.UpdatedTimestamp)

	undone, err := svc.NoteUndo(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "first", undone.Content)
	assert.False(t, undone.CanUndo)
	assert.True(t, undone.CanRedo)
	assert.Equal(t, 1, undone.RedoCount)

	redone, err := svc.NoteRedo(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "second", redone.Content)
	assert.True(t, redone.CanUndo)
	assert.False(t, redone.CanRedo)
}

func TestNoteUpdateNoOp(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "stable", Content: "body"})
	require.NoError(t, err)

	// 修剪后内容相同，不产生历史
	same, changed, err := svc.NoteUpdate(&NoteUpdateRequestParams{
		ID:      created.ID,
		Content: strPtr("  body  "),
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, created.UpdatedTimestamp, same.UpdatedTimestamp)
	assert.Zero(t, same.UndoCount)
}

func TestNoteUpdateValidation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "   ", Content: "x"})
	require.Error(t, err)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "valid", Content: "x"})
	require.NoError(t, err)

	_, _, err = svc.NoteUpdate(&NoteUpdateRequestParams{ID: created.ID, Title: strPtr("   ")})
	require.Error(t, err)
	_, _, err = svc.NoteUpdate(&NoteUpdateRequestParams{ID: created.ID, Content: strPtr("  \t ")})
	require.Error(t, err)

	// 空内容与纯空白内容同属非法：去除空白后必须非空
	_, _, err = svc.NoteUpdate(&NoteUpdateRequestParams{ID: created.ID, Content: strPtr("")})
	require.Error(t, err)
	var codeErr *code.Code
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, code.ErrorInvalidParams.Code(), codeErr.Code())

	// 拒绝的编辑不落库
	current, err := svc.NoteGet(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "x", current.Content)
}

func TestNoteUpdateStaleWrite(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "shared", Content: "v1"})
	require.NoError(t, err)
	staleToken := created.UpdatedTimestamp

	// 另一个请求先行写入
	_, changed, err := svc.NoteUpdate(&NoteUpdateRequestParams{
		ID:      created.ID,
		Content: strPtr("v2"),
	})
	require.NoError(t, err)
	require.True(t, changed)

	// 携带过期令牌的写入必须被拒绝
	_, _, err = svc.NoteUpdate(&NoteUpdateRequestParams{
		ID:              created.ID,
		Content:         strPtr("v3"),
		LastKnownUpdate: &staleToken,
	})
	assert.Equal(t, code.ErrorStaleWrite, err)

	// 被拒绝的写入不留下任何痕迹
	note, err := svc.NoteGet(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "v2", note.Content)
	assert.Equal(t, 1, note.UndoCount)
}

func TestNoteUndoRedoEmptyHistory(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "fresh", Content: ""})
	require.NoError(t, err)

	_, err = svc.NoteUndo(&NoteGetRequestParams{ID: created.ID})
	assert.Equal(t, code.ErrorNothingToUndo, err)

	_, err = svc.NoteRedo(&NoteGetRequestParams{ID: created.ID})
	assert.Equal(t, code.ErrorNothingToRedo, err)
}

func TestNoteNotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.NoteGet(&NoteGetRequestParams{ID: 404})
	assert.Equal(t, code.ErrorNoteNotFound, err)

	_, _, err = svc.NoteUpdate(&NoteUpdateRequestParams{ID: 404, Content: strPtr("x")})
	assert.Equal(t, code.ErrorNoteNotFound, err)

	err = svc.NoteDelete(&NoteGetRequestParams{ID: 404})
	assert.Equal(t, code.ErrorNoteNotFound, err)
}

func TestNoteDeleteRestoreKeepsHistory(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "trashable", Content: "v1"})
	require.NoError(t, err)

	_, changed, err := svc.NoteUpdate(&NoteUpdateRequestParams{ID: created.ID, Content: strPtr("v2")})
	require.NoError(t, err)
	require.True(t, changed)

	require.NoError(t, svc.NoteDelete(&NoteGetRequestParams{ID: created.ID}))

	// 回收站中的笔记对常规操作等同于不存在
	_, err = svc.NoteGet(&NoteGetRequestParams{ID: created.ID})
	assert.Equal(t, code.ErrorNoteNotFound, err)
	_, err = svc.NoteUndo(&NoteGetRequestParams{ID: created.ID})
	assert.Equal(t, code.ErrorNoteNotFound, err)

	// 恢复后撤销从停止处继续
	restored, err := svc.NoteRestore(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.True(t, restored.CanUndo)
	assert.Equal(t, 1, restored.UndoCount)

	undone, err := svc.NoteUndo(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "v1", undone.Content)
}

func TestNotePurgeRequiresTrash(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "active", Content: "x"})
	require.NoError(t, err)

	// 未进回收站的笔记不允许直接永久删除
	err = svc.NotePurge(&NoteGetRequestParams{ID: created.ID})
	require.Error(t, err)
	var codeErr *code.Code
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, code.ErrorInvalidParams.Code(), codeErr.Code())

	require.NoError(t, svc.NoteDelete(&NoteGetRequestParams{ID: created.ID}))
	require.NoError(t, svc.NotePurge(&NoteGetRequestParams{ID: created.ID}))

	_, err = svc.NoteHistory(&NoteGetRequestParams{ID: created.ID})
	assert.Equal(t, code.ErrorNoteNotFound, err)
}

func TestNoteHistoryPreview(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "doc", Content: "alpha"})
	require.NoError(t, err)

	for _, content := range []string{"alpha beta", "alpha beta gamma"} {
		_, changed, err := svc.NoteUpdate(&NoteUpdateRequestParams{ID: created.ID, Content: strPtr(content)})
		require.NoError(t, err)
		require.True(t, changed)
	}
	_, err = svc.NoteUndo(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)

	hist, err := svc.NoteHistory(&NoteGetRequestParams{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, hist.UndoCount)
	assert.Equal(t, 1, hist.RedoCount)
	require.Len(t, hist.UndoStack, 1)
	require.Len(t, hist.RedoStack, 1)

	// 当前内容为 "alpha beta"，重做栈中的快照多出 " gamma"
	assert.Equal(t, 6, hist.RedoStack[0].CharsRemoved)
	assert.NotEmpty(t, hist.RedoStack[0].Patch)
	assert.NotZero(t, hist.UndoStack[0].EditedAt)
}

func TestNoteListPagination(t *testing.T) {
	svc := setupService(t)

	for _, title := range []string{"alpha", "beta", "gamma"} {
		_, err := svc.NoteCreate(&NoteCreateRequestParams{Title: title, Content: util.GetRandomString(32)})
		require.NoError(t, err)
	}

	list, count, err := svc.NoteList(&NoteListRequestParams{}, &app.Pager{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, list, 2)

	list, _, err = svc.NoteList(&NoteListRequestParams{Keyword: "beta"}, &app.Pager{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "beta", list[0].Title)
}

func TestNoteCleanup(t *testing.T) {
	svc := setupService(t)

	created, err := svc.NoteCreate(&NoteCreateRequestParams{Title: "expired", Content: "x"})
	require.NoError(t, err)
	require.NoError(t, svc.NoteDelete(&NoteGetRequestParams{ID: created.ID}))

	// 删除时间拨回到保留期之外
	past := timex.Time(time.Now().Add(-8 * 24 * time.Hour))
	require.NoError(t, global.DBEngine.Model(&model.Note{}).
		Where("id = ?", created.ID).
		Update("deleted_at", past).Error)

	removed, err := svc.NoteCleanup()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = svc.NoteHistory(&NoteGetRequestParams{ID: created.ID})
	assert.Equal(t, code.ErrorNoteNotFound, err)
}
