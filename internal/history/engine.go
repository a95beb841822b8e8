package history

import (
	"strings"
	"time"
)

// Engine applies the three history transitions to one document at a
// time. The snapshot bound is injected at construction so tests can
// exercise small limits.
// Engine 对单个文档执行三种历史状态转换，
// 快照上限由构造函数注入，便于测试使用小上限
type Engine struct {
	maxHistory int
}

func NewEngine(maxHistory int) *Engine {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Engine{maxHistory: maxHistory}
}

func (e *Engine) MaxHistory() int {
	return e.maxHistory
}

// CheckStale rejects an edit built against a stale read. A nil
// lastKnownUpdate skips the check entirely — the guard is opt-in.
// Must run strictly before ApplyEdit; it never touches the stacks.
// CheckStale 拒绝基于过期读取构建的编辑。lastKnownUpdate 为 nil
// 时跳过检查（该防护为可选）。必须在 ApplyEdit 之前执行，不会改动栈
func (e *Engine) CheckStale(doc *Document, lastKnownUpdate *int64) error {
	if lastKnownUpdate == nil {
		return nil
	}
	if *lastKnownUpdate != doc.UpdatedTimestamp {
		return ErrStaleWrite
	}
	return nil
}

// ApplyEdit applies the changed field(s) after recording the pre-edit
// state. A proposal that leaves both fields unchanged after trimming
// is a no-op: no snapshot, no history mutation, returns false. There
// is no first-edit special case — an unchanged first edit is a no-op
// like any other.
// ApplyEdit 先记录编辑前状态再应用变更字段。修剪后两个字段都未变化
// 的提案是空操作：不产生快照、不改动历史、返回 false。
// 不存在首次编辑强制快照的特殊情况
func (e *Engine) ApplyEdit(doc *Document, title *string, content *string) bool {
	var newTitle, newContent string

	titleChanged := false
	if title != nil {
		newTitle = strings.TrimSpace(*title)
		titleChanged = newTitle != doc.Title
	}
	contentChanged := false
	if content != nil {
		newContent = strings.TrimSpace(*content)
		contentChanged = newContent != doc.Content
	}

	if !titleChanged && !contentChanged {
		return false
	}

	now := e.touch(doc)
	doc.Undo.Push(Snapshot{
		Title:    doc.Title,
		Content:  doc.Content,
		EditedAt: now,
	}, e.maxHistory)

	// Any new edit invalidates the whole redo chain
	// 任何新编辑都会使整条重做链失效
	doc.Redo.Clear()

	if titleChanged {
		doc.Title = newTitle
	}
	if contentChanged {
		doc.Content = newContent
	}
	return true
}

// Undo captures the current state onto the redo stack, then restores
// the most recent prior state from the undo stack.
// Undo 先将当前状态压入重做栈，再从撤销栈恢复最近的先前状态
func (e *Engine) Undo(doc *Document) error {
	if doc.Undo.Len() == 0 {
		return ErrNothingToUndo
	}

	now := e.touch(doc)
	doc.Redo.Push(Snapshot{
		Title:    doc.Title,
		Content:  doc.Content,
		EditedAt: now,
	}, e.maxHistory)

	snap, _ := doc.Undo.Pop()
	doc.Title = snap.Title
	doc.Content = snap.Content
	return nil
}

// Redo is the mirror of Undo: capture current state onto the undo
// stack, restore the most recently undone state from the redo stack.
// Redo 是 Undo 的镜像：当前状态压入撤销栈，再从重做栈恢复
func (e *Engine) Redo(doc *Document) error {
	if doc.Redo.Len() == 0 {
		return ErrNothingToRedo
	}

	now := e.touch(doc)
	doc.Undo.Push(Snapshot{
		Title:    doc.Title,
		Content:  doc.Content,
		EditedAt: now,
	}, e.maxHistory)

	snap, _ := doc.Redo.Pop()
	doc.Title = snap.Title
	doc.Content = snap.Content
	return nil
}

// touch advances the conflict token. Strictly monotonic even when two
// mutations land inside the same millisecond, otherwise the stale
// check could miss an intervening write.
// touch 推进冲突令牌。即使两次变更落在同一毫秒内也严格单调递增，
// 否则过期检查可能漏掉中间的写入
func (e *Engine) touch(doc *Document) int64 {
	now := time.Now().UnixMilli()
	if now <= doc.UpdatedTimestamp {
		now = doc.UpdatedTimestamp + 1
	}
	doc.UpdatedTimestamp = now
	return now
}
