package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/haierkeys/note-revision-service/internal/history"
	"github.com/haierkeys/note-revision-service/pkg/timex"

	"github.com/bytedance/sonic"
)

// Note 笔记数据表模型
type Note struct {
	ID               int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title            string       `gorm:"column:title;type:varchar(512);not null" json:"title"`
	Content          string       `gorm:"column:content;type:text;not null" json:"content"`
	UpdatedTimestamp int64        `gorm:"column:updated_timestamp;not null;index" json:"updatedTimestamp"` // 冲突令牌（Unix 毫秒）
	UndoHistory      SnapshotList `gorm:"column:undo_history;type:text" json:"undoHistory"`
	RedoHistory      SnapshotList `gorm:"column:redo_history;type:text" json:"redoHistory"`
	IsDeleted        int          `gorm:"column:is_deleted;default:0;index" json:"isDeleted"`
	DeletedAt        timex.Time   `gorm:"column:deleted_at" json:"deletedAt"`
	CreatedAt        timex.Time   `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt        timex.Time   `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
}

func (Note) TableName() string {
	return "note"
}

// SnapshotList persists an ordered snapshot stack as a JSON column.
// Order must survive the round-trip exactly, it is the stack order.
// SnapshotList 将有序快照栈持久化为 JSON 列，顺序必须精确保持
type SnapshotList []history.Snapshot

// Value implements driver.Valuer
func (l SnapshotList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := sonic.Marshal([]history.Snapshot(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *SnapshotList) Scan(v any) error {
	var data []byte
	switch value := v.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = value
	case string:
		data = []byte(value)
	default:
		return fmt.Errorf("cannot convert %T to SnapshotList", v)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	var snaps []history.Snapshot
	if err := sonic.Unmarshal(data, &snaps); err != nil {
		return err
	}
	*l = snaps
	return nil
}
