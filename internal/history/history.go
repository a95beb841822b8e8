// Package history implements the note version history engine: bounded
// undo/redo snapshot stacks, the edit/undo/redo state transitions and
// the stale-write conflict check. It is pure state manipulation — no
// storage, no transport, no locking. The caller must hold exclusive
// access to a document for the duration of one operation.
// 包 history 实现笔记版本历史引擎：有界撤销/重做快照栈、
// 编辑/撤销/重做状态转换以及过期写入冲突检查
package history

import (
	"errors"
)

// DefaultMaxHistory is the per-stack snapshot bound used when the
// engine is constructed without an explicit limit.
// DefaultMaxHistory 未显式指定上限时每个栈的快照数量上限
const DefaultMaxHistory = 20

var (
	// ErrNothingToUndo undo with an empty undo stack
	// ErrNothingToUndo 撤销栈为空时执行撤销
	ErrNothingToUndo = errors.New("no changes to undo")

	// ErrNothingToRedo redo with an empty redo stack
	// ErrNothingToRedo 重做栈为空时执行重做
	ErrNothingToRedo = errors.New("no changes to redo")

	// ErrStaleWrite edit built against an outdated view of the document
	// ErrStaleWrite 基于过期的文档视图提交编辑
	ErrStaleWrite = errors.New("note was modified since it was last read")
)

// Snapshot is an immutable recorded copy of a document's editable
// fields at the moment before a mutation. EditedAt is Unix
// milliseconds, matching the precision of the conflict token so the
// value survives persistence round-trips exactly.
// Snapshot 是文档可编辑字段在变更前一刻的不可变副本，
// EditedAt 为 Unix 毫秒
type Snapshot struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	EditedAt int64  `json:"editedAt"`
}

// Document is the in-memory value the engine operates on. The undo and
// redo stacks live and die with their document: created empty at note
// creation, untouched by soft delete and restore, destroyed only when
// the note is permanently removed.
// Document 是引擎操作的内存值。撤销/重做栈与文档同生命周期：
// 创建时为空，软删除与恢复不影响，仅随笔记永久删除而销毁
type Document struct {
	Title   string
	Content string

	// UpdatedTimestamp advances on every mutation (Unix milliseconds)
	// and is the sole conflict-detection token. It is never restored
	// to a prior value by undo or redo.
	// UpdatedTimestamp 每次变更都会前进（Unix 毫秒），
	// 是唯一的冲突检测令牌，撤销/重做不会将其回退
	UpdatedTimestamp int64

	Undo Stack
	Redo Stack
}

// CanUndo reports whether an undo step is available
// CanUndo 报告是否有可撤销的步骤
func (d *Document) CanUndo() bool {
	return d.Undo.Len() > 0
}

// CanRedo reports whether a redo step is available
// CanRedo 报告是否有可重做的步骤
func (d *Document) CanRedo() bool {
	return d.Redo.Len() > 0
}
