package history

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 验证任意编辑序列下撤销栈始终有界且保留最近的编辑前状态

func TestProperty_BoundedHistory(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("undo stack stays bounded and keeps newest states", prop.ForAll(
		func(edits int, bound int) bool {
			e := NewEngine(bound)
			doc := &Document{Title: "t", Content: "v0", UpdatedTimestamp: 1}

			for i := 1; i <= edits; i++ {
				content := fmt.Sprintf("v%d", i)
				if !e.ApplyEdit(doc, nil, &content) {
					return false
				}
				if doc.Undo.Len() > bound {
					return false
				}
			}

			// The surviving entries are the most recent pre-edit
			// states, oldest evicted first.
			// 留存的条目是最近的编辑前状态，最旧的先被淘汰
			keep := edits
			if keep > bound {
				keep = bound
			}
			if doc.Undo.Len() != keep {
				return false
			}
			first := edits - keep // pre-edit state index of the oldest kept snapshot
			for i := 0; i < keep; i++ {
				if doc.Undo[i].Content != fmt.Sprintf("v%d", first+i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 60).WithLabel("edits"),
		gen.IntRange(1, 25).WithLabel("bound"),
	))

	properties.TestingRun(t)
}

// 验证任意撤销深度下新编辑都会清空重做栈

func TestProperty_EditInvalidatesRedo(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("redo stack is empty after any successful edit", prop.ForAll(
		func(edits int, undos int) bool {
			e := NewEngine(DefaultMaxHistory)
			doc := &Document{Title: "t", Content: "v0", UpdatedTimestamp: 1}

			for i := 1; i <= edits; i++ {
				content := fmt.Sprintf("v%d", i)
				e.ApplyEdit(doc, nil, &content)
			}
			for i := 0; i < undos && doc.CanUndo(); i++ {
				if err := e.Undo(doc); err != nil {
					return false
				}
			}

			content := "after-undo edit"
			if !e.ApplyEdit(doc, nil, &content) {
				return false
			}
			return doc.Redo.Len() == 0
		},
		gen.IntRange(1, 30).WithLabel("edits"),
		gen.IntRange(0, 30).WithLabel("undos"),
	))

	properties.TestingRun(t)
}

// 验证撤销再重做总能还原内容

func TestProperty_UndoRedoRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("undo then redo restores title and content", prop.ForAll(
		func(title string, content string) bool {
			e := NewEngine(DefaultMaxHistory)
			doc := &Document{Title: "base title", Content: "base content", UpdatedTimestamp: 1}

			if !e.ApplyEdit(doc, &title, &content) {
				// Proposal trimmed to the current state, nothing to verify
				// 提案修剪后与当前状态相同，无需验证
				return doc.Undo.Len() == 0
			}
			editedTitle, editedContent := doc.Title, doc.Content

			if err := e.Undo(doc); err != nil {
				return false
			}
			if doc.Title != "base title" || doc.Content != "base content" {
				return false
			}

			if err := e.Redo(doc); err != nil {
				return false
			}
			return doc.Title == editedTitle && doc.Content == editedContent
		},
		gen.AlphaString().WithLabel("title"),
		gen.AnyString().WithLabel("content"),
	))

	properties.TestingRun(t)
}
