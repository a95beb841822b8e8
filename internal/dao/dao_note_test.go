package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/note-revision-service/internal/history"
	"github.com/haierkeys/note-revision-service/internal/model"
	"github.com/haierkeys/note-revision-service/pkg/timex"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db, "Note"))

	return New(db, context.Background())
}

func TestNoteCreateAndGet(t *testing.T) {
	d := newTestDao(t)

	note, err := d.NoteCreate(&NoteSet{
		Title:            "meeting notes",
		Content:          "agenda",
		UpdatedTimestamp: 1000,
	})
	require.NoError(t, err)
	assert.NotZero(t, note.ID)
	assert.Equal(t, "meeting notes", note.Title)
	assert.Equal(t, int64(1000), note.UpdatedTimestamp)

	got, err := d.NoteGetById(note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
	assert.Equal(t, "agenda", got.Content)
	assert.Equal(t, 0, got.IsDeleted)
}

func TestNoteGetByIdMissing(t *testing.T) {
	d := newTestDao(t)

	_, err := d.NoteGetById(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteSaveRoundTripsStacks(t *testing.T) {
	d := newTestDao(t)

	note, err := d.NoteCreate(&NoteSet{Title: "v1", Content: "one", UpdatedTimestamp: 1})
	require.NoError(t, err)

	undo := model.SnapshotList{
		{Title: "v1", Content: "one", EditedAt: 2},
		{Title: "v2", Content: "two", EditedAt: 3},
	}
	redo := model.SnapshotList{
		{Title: "v4", Content: "four", EditedAt: 4},
	}

	saved, err := d.NoteSave(&NoteSet{
		Title:            "v3",
		Content:          "three",
		UpdatedTimestamp: 5,
		UndoHistory:      undo,
		RedoHistory:      redo,
	}, note.ID)
	require.NoError(t, err)

	assert.Equal(t, "v3", saved.Title)
	assert.Equal(t, int64(5), saved.UpdatedTimestamp)
	// 栈顺序必须精确保持
	require.Len(t, saved.UndoHistory, 2)
	assert.Equal(t, history.Snapshot{Title: "v1", Content: "one", EditedAt: 2}, saved.UndoHistory[0])
	assert.Equal(t, history.Snapshot{Title: "v2", Content: "two", EditedAt: 3}, saved.UndoHistory[1])
	require.Len(t, saved.RedoHistory, 1)
	assert.Equal(t, "four", saved.RedoHistory[0].Content)
}

func TestNoteSoftDeleteRestore(t *testing.T) {
	d := newTestDao(t)

	note, err := d.NoteCreate(&NoteSet{
		Title:       "to trash",
		Content:     "body",
		UndoHistory: model.SnapshotList{{Title: "old", Content: "old body", EditedAt: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, d.NoteUpdateDelete(note.ID))

	// 回收站中的记录普通读取不可见
	_, err = d.NoteGetById(note.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	trashed, err := d.NoteGetAnyById(note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, trashed.IsDeleted)
	assert.False(t, trashed.DeletedAt.IsZero())
	// 软删除不触碰历史栈
	assert.Len(t, trashed.UndoHistory, 1)

	require.NoError(t, d.NoteUpdateRestore(note.ID))
	restored, err := d.NoteGetById(note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.IsDeleted)
	assert.Len(t, restored.UndoHistory, 1)
}

func TestNoteListFiltersAndCounts(t *testing.T) {
	d := newTestDao(t)

	for _, set := range []*NoteSet{
		{Title: "grocery list", Content: "milk", UpdatedTimestamp: 1},
		{Title: "work log", Content: "standup", UpdatedTimestamp: 2},
		{Title: "grocery backup", Content: "eggs", UpdatedTimestamp: 3},
	} {
		_, err := d.NoteCreate(set)
		require.NoError(t, err)
	}

	all, err := d.NoteList("", 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// 按冲突令牌倒序
	assert.Equal(t, "grocery backup", all[0].Title)

	filtered, err := d.NoteList("grocery", 1, 10)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	count, err := d.NoteListCount("grocery")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNoteTrashListAndPurge(t *testing.T) {
	d := newTestDao(t)

	keep, err := d.NoteCreate(&NoteSet{Title: "keep", Content: "keep"})
	require.NoError(t, err)
	gone, err := d.NoteCreate(&NoteSet{Title: "gone", Content: "gone"})
	require.NoError(t, err)

	require.NoError(t, d.NoteUpdateDelete(gone.ID))

	trash, err := d.NoteTrashList(1, 10)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, gone.ID, trash[0].ID)

	count, err := d.NoteTrashListCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, d.NoteDelete(gone.ID))
	_, err = d.NoteGetAnyById(gone.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 未删除的笔记不受影响
	_, err = d.NoteGetById(keep.ID)
	assert.NoError(t, err)
}

func TestNoteDeleteExpired(t *testing.T) {
	d := newTestDao(t)

	old, err := d.NoteCreate(&NoteSet{Title: "old", Content: "old"})
	require.NoError(t, err)
	fresh, err := d.NoteCreate(&NoteSet{Title: "fresh", Content: "fresh"})
	require.NoError(t, err)

	require.NoError(t, d.NoteUpdateDelete(old.ID))
	require.NoError(t, d.NoteUpdateDelete(fresh.ID))

	// 把 old 的删除时间拨回到保留期之外
	past := timex.Time(time.Now().Add(-48 * time.Hour))
	require.NoError(t, d.DB().Model(&model.Note{}).
		Where("id = ?", old.ID).
		Update("deleted_at", past).Error)

	removed, err := d.NoteDeleteExpired(timex.Time(time.Now().Add(-24 * time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = d.NoteGetAnyById(old.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = d.NoteGetAnyById(fresh.ID)
	assert.NoError(t, err)
}
