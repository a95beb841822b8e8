package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newDoc(title, content string) *Document {
	return &Document{
		Title:            title,
		Content:          content,
		UpdatedTimestamp: 1,
	}
}

func TestApplyEdit_RecordsPreEditState(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("v1 title", "v1 content")

	changed := e.ApplyEdit(doc, strPtr("v2 title"), strPtr("v2 content"))
	require.True(t, changed)

	assert.Equal(t, "v2 title", doc.Title)
	assert.Equal(t, "v2 content", doc.Content)
	require.Equal(t, 1, doc.Undo.Len())

	snap, ok := doc.Undo.Top()
	require.True(t, ok)
	assert.Equal(t, "v1 title", snap.Title)
	assert.Equal(t, "v1 content", snap.Content)
	assert.NotZero(t, snap.EditedAt)
}

func TestApplyEdit_TrimsProposedFields(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "content")

	changed := e.ApplyEdit(doc, strPtr("  title  "), strPtr("\tnew content\n"))
	require.True(t, changed)

	// Title trims to the current value so only content changes
	// 标题修剪后与当前值相同，只有内容发生变化
	assert.Equal(t, "title", doc.Title)
	assert.Equal(t, "new content", doc.Content)
}

func TestApplyEdit_NoOp(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "content")
	before := doc.UpdatedTimestamp

	changed := e.ApplyEdit(doc, strPtr(" title "), strPtr("content"))
	assert.False(t, changed)
	assert.Equal(t, 0, doc.Undo.Len())
	assert.Equal(t, 0, doc.Redo.Len())
	assert.Equal(t, before, doc.UpdatedTimestamp)

	// No first-edit special case: an unchanged first edit on a fresh
	// document is a no-op like any other.
	// 没有首次编辑特殊情况：新文档上未变化的首次编辑同样是空操作
	changed = e.ApplyEdit(doc, nil, nil)
	assert.False(t, changed)
	assert.Equal(t, 0, doc.Undo.Len())
}

func TestApplyEdit_AdvancesConflictToken(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "content")

	seen := doc.UpdatedTimestamp
	for i := 0; i < 5; i++ {
		require.True(t, e.ApplyEdit(doc, nil, strPtr(fmt.Sprintf("content %d", i))))
		assert.Greater(t, doc.UpdatedTimestamp, seen)
		seen = doc.UpdatedTimestamp
	}
}

func TestApplyEdit_ClearsRedoStack(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "v1")

	require.True(t, e.ApplyEdit(doc, nil, strPtr("v2")))
	require.True(t, e.ApplyEdit(doc, nil, strPtr("v3")))
	require.NoError(t, e.Undo(doc))
	require.NoError(t, e.Undo(doc))
	require.Equal(t, 2, doc.Redo.Len())

	// Any successful edit drops the whole redo chain
	// 任何成功的编辑都会丢弃整条重做链
	require.True(t, e.ApplyEdit(doc, nil, strPtr("branch")))
	assert.Equal(t, 0, doc.Redo.Len())
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("s0 title", "s0 content")

	require.True(t, e.ApplyEdit(doc, strPtr("s1 title"), strPtr("s1 content")))
	tsAfterEdit := doc.UpdatedTimestamp

	require.NoError(t, e.Undo(doc))
	assert.Equal(t, "s0 title", doc.Title)
	assert.Equal(t, "s0 content", doc.Content)
	// The conflict token keeps advancing, it is never restored
	// 冲突令牌持续前进，永远不会被恢复
	assert.Greater(t, doc.UpdatedTimestamp, tsAfterEdit)

	require.NoError(t, e.Redo(doc))
	assert.Equal(t, "s1 title", doc.Title)
	assert.Equal(t, "s1 content", doc.Content)
}

func TestChainedUndo_StackLedger(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "v1")

	require.True(t, e.ApplyEdit(doc, nil, strPtr("v2")))
	require.True(t, e.ApplyEdit(doc, nil, strPtr("v3")))
	require.True(t, e.ApplyEdit(doc, nil, strPtr("v4")))

	// Three edits leave exactly the three pre-edit states
	// 三次编辑后恰好留下三个编辑前状态
	require.Equal(t, 3, doc.Undo.Len())
	assert.Equal(t, "v1", doc.Undo[0].Content)
	assert.Equal(t, "v2", doc.Undo[1].Content)
	assert.Equal(t, "v3", doc.Undo[2].Content)

	require.NoError(t, e.Undo(doc))
	require.NoError(t, e.Undo(doc))

	assert.Equal(t, 1, doc.Undo.Len())
	assert.Equal(t, 2, doc.Redo.Len())
	assert.Equal(t, "v2", doc.Content)
}

func TestUndoRedo_EmptyHistory(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "content")

	assert.ErrorIs(t, e.Undo(doc), ErrNothingToUndo)
	assert.ErrorIs(t, e.Redo(doc), ErrNothingToRedo)

	// The failed calls must not have touched anything
	// 失败的调用不得改动任何状态
	assert.Equal(t, 0, doc.Undo.Len())
	assert.Equal(t, 0, doc.Redo.Len())
	assert.Equal(t, "content", doc.Content)
}

func TestCheckStale(t *testing.T) {
	e := NewEngine(0)
	doc := newDoc("title", "v1")
	t0 := doc.UpdatedTimestamp

	require.True(t, e.ApplyEdit(doc, nil, strPtr("v2")))
	t1 := doc.UpdatedTimestamp

	assert.ErrorIs(t, e.CheckStale(doc, &t0), ErrStaleWrite)
	assert.NoError(t, e.CheckStale(doc, &t1))
	// Absent token skips the guard entirely
	// 未提供令牌时完全跳过防护
	assert.NoError(t, e.CheckStale(doc, nil))
}

func TestBoundedHistory_Eviction(t *testing.T) {
	e := NewEngine(5)
	doc := newDoc("title", "v1")

	for i := 2; i <= 9; i++ {
		require.True(t, e.ApplyEdit(doc, nil, strPtr(fmt.Sprintf("v%d", i))))
		assert.LessOrEqual(t, doc.Undo.Len(), 5)
	}

	// Eight edits with bound 5: the pre-edit states v4..v8 survive
	// 八次编辑、上限为 5：保留编辑前状态 v4..v8
	require.Equal(t, 5, doc.Undo.Len())
	for i, want := range []string{"v4", "v5", "v6", "v7", "v8"} {
		assert.Equal(t, want, doc.Undo[i].Content)
	}
}
