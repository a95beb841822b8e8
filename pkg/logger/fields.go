package logger

// Unified log field name constants, shared across the project so log
// queries stay consistent.
// 统一的日志字段命名常量，确保整个项目日志字段命名一致，便于查询分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldUndoDepth 撤销栈深度字段
	FieldUndoDepth = "undoDepth"

	// FieldRedoDepth 重做栈深度字段
	FieldRedoDepth = "redoDepth"
)
